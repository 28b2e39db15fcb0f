package importer

import (
	"io"

	"github.com/MrJamesThe3rd/ledger/internal/importer/statement"
)

type Bank string

const (
	BankCGD     Bank = "cgd"
	BankGeneric Bank = "generic"
)

var Banks = []Bank{BankGeneric, BankCGD}

type Parser interface {
	Parse(r io.Reader) ([]statement.Line, error)
}
