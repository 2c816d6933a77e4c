// Package models contains the gorm persistence models. Each model maps one table
// and converts to and from its domain type with ToDomain and FromDomain.
//
// The postgres schema is owned by the SQL files under migrations/; the gorm tags
// here mirror it so AutoMigrate can build an equivalent sqlite schema for local
// runs and tests.
package models
