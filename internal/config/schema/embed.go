package schema

import _ "embed"

//go:embed wheel-installer-config.schema.json
var ConfigSchema []byte
