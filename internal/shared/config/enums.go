//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package config

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// DatabaseDriver selects the relational store backing the portal
// ENUM(postgres,sqlite)
type DatabaseDriver string
