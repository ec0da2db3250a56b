// Package models defines the persisted and transported types of the validation feature.
package models
