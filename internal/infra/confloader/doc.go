// Package confloader loads framekv configuration from layered sources.
//
// Sources are merged with the later ones taking precedence:
//
//  1. Built-in defaults (loaded as a map)
//  2. YAML configuration file
//  3. Environment variables with the FRAMEKV_ prefix (underscore
//     nests, double underscore is a literal underscore:
//     FRAMEKV_SERVER_RATE__LIMIT sets server.rate_limit)
//
// The package also provides an fsnotify-based watcher so the server can
// react to configuration file edits at runtime.
package confloader
