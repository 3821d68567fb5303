// Package models defines the gallery domain records: users, albums, the
// pictures an album contains and the users tagged in each picture.
//
// The records carry no persistence awareness. Backends hand out copies, so
// mutating a returned Album, Picture or User never changes stored state until
// an explicit write call is made.
package models
