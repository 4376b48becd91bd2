// Package utils provides common utility functions for the table reconciler.
// It includes helper functions for converting driver values to integers and
// strings, and NULL-aware string comparison shared by the diff engine and the
// sample writers.
package utils
