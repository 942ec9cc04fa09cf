// Package config loads recipe definition files.
//
// A recipe directory holds one definition file and the payload:
//
// 	acme/foo/
// 	├── recipe.yaml      (or .yml, .json, .hcl, .toml)
// 	└── files/           (optional; the directory itself is used otherwise)
//
// 🔌 Parsers register themselves by file extension. Each one produces a
// Definition with the ordered copy manifest, extra placeholders and ignore
// patterns. Manifest order always follows the file.
//
// 🔍 Example (YAML):
//
// 	name: acme/foo
// 	copy-from-recipe:
// 	  config/: '%CONFIG_DIR%/'
// 	  bin/foo: '%BIN_DIR%/foo'
// 	placeholders:
// 	  bundle-dir: src/AcmeBundle
// 	ignore:
// 	  - '**/*.md'
//
// The same in HCL, where env exposes the process environment:
//
// 	name = "acme/foo"
// 	copy "config/" { to = "%CONFIG_DIR%/" }
// 	copy "bin/foo" { to = "%BIN_DIR%/foo" }
// 	placeholders = { "bundle-dir" = "src/AcmeBundle" }
// 	ignore = ["**/*.md"]
package config
