// Package config provides configuration for the gallery console.
//
// Values are resolved in this order, later sources winning:
//
//  1. LoadDefaults: built-in defaults (SQLite file "galleryDB.sqlite").
//  2. parseJson: a JSON file named by -c or -config.
//  3. parseEnv: GALLERY_* environment variables.
//  4. parseFlags: -b, -d, -l and -color.
package config
