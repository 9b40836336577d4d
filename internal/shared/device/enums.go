//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package device

// Class groups clients by rendering capability
// ENUM(desktop,smart,basic)
type Class string
