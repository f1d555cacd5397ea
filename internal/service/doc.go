// Package service implements the application's use cases on top of the
// store contracts. Services own business rules and transaction scope;
// they never touch SQL or HTTP directly.
package service
