// Package cookie defines the value types and contracts shared by the client
// cookie engine: the request Origin used as the matching key, the stored
// Cookie record, ordered Headers, the pluggable Spec strategy and the
// Registry that maps policy identifiers to Spec factories.
//
// Implementations of Spec live in package cookiespec, the default store in
// package cookiestore and the request interceptor in package protocol.
package cookie
