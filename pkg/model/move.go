package model

type Move struct {
	ID       int    `db:"id"`
	Power    *int   `db:"power"`
	PP       *int   `db:"pp"`
	Accuracy *int   `db:"accuracy"`
	TypeID   *int   `db:"type_id"`
	Name     string `db:"name"`
}
