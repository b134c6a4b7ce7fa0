// Package domain holds the error taxonomy shared by every layer of the pyramid service.
//
// The pyramid data model itself lives in domain/pyramid so that it can be imported
// without pulling in anything else.
package domain
