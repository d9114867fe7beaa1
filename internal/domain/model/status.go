package model

type Status string

const (
	StatusOK          Status = "ok"
	StatusFetchError  Status = "fetch_error"
	StatusMissingName Status = "missing_name"
	StatusNeedsSource Status = "needs_source"
	StatusNeedsAPI    Status = "needs_api"
	StatusNoParser    Status = "no_parser"
)

var Statuses = []Status{
	StatusOK,
	StatusFetchError,
	StatusMissingName,
	StatusNeedsSource,
	StatusNeedsAPI,
	StatusNoParser,
}

func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
