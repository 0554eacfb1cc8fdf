package core

type Reporter interface {
	Report(table ResultTable) error
}
