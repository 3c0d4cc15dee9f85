package schemas

import "embed"

//go:embed events seed
var SchemasFS embed.FS
