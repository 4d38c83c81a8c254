package cli

import (
	"math"
	"strconv"
)

// Parse applies args (without the program name) to the default parameter
// table. Each token has the form -<key> or -<key><:|=><value>. Repeating a
// key is a warning and the last value wins.
func Parse(args []string) (*Params, []Warning, error) {
	p := Defaults()
	var warns []Warning

	for _, tok := range args {
		dup, err := p.apply(tok)
		if err != nil {
			return nil, warns, err
		}
		if dup {
			warns = append(warns, warnf("multiple definition of '%s'", tok))
		}
	}
	return p, warns, nil
}

// apply updates the parameter named by tok and reports whether it was
// already set.
//
//nolint:cyclop
func (p *Params) apply(tok string) (bool, error) {
	if len(tok) < 2 || tok[0] != '-' {
		return false, errorf(KindSyntax, tok, "wrong parameter: '%s'; use -h for help", tok)
	}

	switch key := tok[1]; key {
	case 'v', 'h', 'j', 'w', 'm':
		if len(tok) != 2 {
			return false, errorf(KindSyntax, tok, "the key '-%c' takes no value: '%s'", key, tok)
		}
		return p.flag(key).update(true), nil

	case 'c', 'n', 's', 'p', 'l', 'r':
		val, err := value(tok)
		if err != nil {
			return false, err
		}
		f, err := number(tok, val)
		if err != nil {
			return false, err
		}
		if key == 'n' {
			return p.Order.update(truncate(f)), nil
		}
		return p.float(key).update(f), nil

	case 't':
		i, err := choose(tok, FilterTypes)
		if err != nil {
			return false, err
		}
		return p.Type.update(i), nil

	case 'a':
		i, err := choose(tok, Approximations)
		if err != nil {
			return false, err
		}
		return p.Approx.update(i), nil

	case 'o':
		i, err := choose(tok, OutputModes)
		if err != nil {
			return false, err
		}
		return p.Output.update(i), nil

	case 'i':
		val, err := value(tok)
		if err != nil {
			return false, err
		}
		if val == "" {
			return false, errorf(KindSyntax, tok, "the key '%s' needs a file path", tok)
		}
		return p.ImpulsePath.update(val), nil

	default:
		return false, errorf(KindSyntax, tok, "wrong key: '%s'; use -h for help", tok)
	}
}

func (p *Params) flag(key byte) *Param[bool] {
	switch key {
	case 'v':
		return &p.ShowVersion
	case 'h':
		return &p.ShowHelp
	case 'j':
		return &p.ShowHeader
	case 'w':
		return &p.Wide
	default:
		return &p.Measure
	}
}

func (p *Params) float(key byte) *Param[float64] {
	switch key {
	case 'c':
		return &p.HexCalc
	case 's':
		return &p.Suppression
	case 'p':
		return &p.Ripple
	case 'l':
		return &p.Cutoff
	default:
		return &p.CutoffRight
	}
}

// value returns the text after the delimiter of a -<key><:|=><value> token.
func value(tok string) (string, error) {
	if len(tok) < 3 || (tok[2] != ':' && tok[2] != '=') {
		return "", errorf(KindSyntax, tok, "wrong value delimiter at '%s'", tok)
	}
	return tok[3:], nil
}

func number(tok, val string) (float64, error) {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		e := errorf(KindNumber, tok, "the key '%s' has bad numerical value", tok)
		e.Err = err
		return 0, e
	}
	return f, nil
}

// truncate converts toward zero, saturating at the int range so that huge
// orders still fail range validation.
func truncate(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

func choose[T any](tok string, table []Entry[T]) (int, error) {
	val, err := value(tok)
	if err != nil {
		return 0, err
	}
	if i := lookup(table, val); i >= 0 {
		return i, nil
	}

	legal := make([]string, len(table))
	for i, e := range table {
		legal[i] = "-" + string(tok[1]) + ":" + e.Token
	}
	e := errorf(KindEnum, tok, "the key '%s' has a bad value", tok)
	e.Legal = legal
	return 0, e
}
