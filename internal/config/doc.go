// Package config loads the server and CLI settings: scoring profile, result
// limits, downscaling, the optional handwriting reader and overlay colours.
package config
