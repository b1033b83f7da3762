package config

//go:generate go run github.com/dmarkham/enumer -type=Source -trimprefix=Source -transform=lower -text

// Source selects where the catalog is read from.
type Source int

const (
	SourceAPI Source = iota
	SourceDatabase
)
