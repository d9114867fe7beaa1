package model

// SourceID identifies one upstream source. It doubles as the rate cache key.
type SourceID string

const (
	SourceKantor1913 SourceID = "kantor1913"
	SourceShitcoins  SourceID = "shitcoins"
)

func (s SourceID) String() string {
	return string(s)
}
