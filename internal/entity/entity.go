package entity

// Entity is anything that can be persisted to an elastic index.
type Entity interface {
	Slug() string
}
