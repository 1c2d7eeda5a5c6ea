// Package pdconfig holds the per-case hyperparameter tables the floorplan
// and placer engines were tuned against (PA2/PA3's config.cpp), plus a thin
// viper/yaml overlay so a caller can override any field from a config file
// without touching the built-in tables.
//
// Every lookup returns a value, never an error: an unrecognized case or
// alpha bucket falls back to the same "default" row the original tables
// use, so callers never need to branch on whether a case name was
// recognized.
package pdconfig
