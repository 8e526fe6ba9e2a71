// Package service owns the shared tree. TreeService serializes every
// operation behind one mutex and coordinates the journal, metrics and
// logging around the domain tree, independent of transports like gRPC.
package service
