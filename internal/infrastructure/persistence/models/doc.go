// Package models holds the GORM persistence models for the store's aggregates.
// Each model maps one aggregate to one table and converts to and from the domain type.
package models
