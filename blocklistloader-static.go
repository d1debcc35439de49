package adrules

// StaticLoader holds a fixed list in memory. It's used for rules defined in the
// configuration and in tests.
type StaticLoader struct {
	name  string
	rules []string
}

var _ BlocklistLoader = &StaticLoader{}

func NewStaticLoader(name string, rules []string) *StaticLoader {
	return &StaticLoader{name, rules}
}

func (l *StaticLoader) Load() ([]string, error) {
	return l.rules, nil
}

func (l *StaticLoader) String() string {
	return l.name
}
