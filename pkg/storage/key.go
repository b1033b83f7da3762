package storage

//go:generate go run github.com/dmarkham/enumer -type=Key -trimprefix=Key -transform=lower-camel -text

// Key names one of the records kept per owner.
type Key int

const (
	KeyCurrentRoster Key = iota
	KeySavedRosters
	KeyFavorites
)
