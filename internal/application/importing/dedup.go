package importing

// DuplicateDetector remembers the natural keys seen in one parse pass.
type DuplicateDetector struct {
	seen map[string]int
}

func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{seen: make(map[string]int)}
}

func (d *DuplicateDetector) Reset() {
	d.seen = make(map[string]int)
}

// Check records key for rowIndex. For a repeat it returns the row where the
// key was first seen. Empty keys are never recorded.
func (d *DuplicateDetector) Check(key string, rowIndex int) (int, bool) {
	k := Fold(key)
	if k == "" {
		return 0, false
	}
	if first, ok := d.seen[k]; ok {
		return first, true
	}
	d.seen[k] = rowIndex
	return 0, false
}
