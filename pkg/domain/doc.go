// Package domain contains the core task-management model: the Identifier and
// Email value objects, the User and Task entities, and the closed set of
// domain errors raised while constructing or operating on them. The package
// is free of infrastructure concerns so it can be shared by use cases,
// storage adapters and transports alike.
package domain
