package entity

type Location struct {
	BaseNoDelete
	Name string `db:"name"`
}
