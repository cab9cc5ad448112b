package prompt

// Script is a canned Interactor for tests and non-interactive use: each call
// pops the next queued answer of the matching kind. A missing answer yields
// ErrAborted, which is also how tests exercise operator-abort paths.
type Script struct {
	Lines    []string
	Paths    []string
	Files    []string
	Choices  []int
	Confirms []bool
}

func (s *Script) Line(string) (string, error) {
	return popString(&s.Lines)
}

func (s *Script) Path(string) (string, error) {
	return popString(&s.Paths)
}

func (s *Script) File(string) (string, error) {
	return popString(&s.Files)
}

func (s *Script) Choice(_ string, options []string, def int) (int, error) {
	if len(s.Choices) == 0 {
		return 0, ErrAborted
	}
	n := s.Choices[0]
	s.Choices = s.Choices[1:]
	if n < 0 || n >= len(options) {
		return def, nil
	}
	return n, nil
}

func (s *Script) Confirm(string) (bool, error) {
	if len(s.Confirms) == 0 {
		return false, ErrAborted
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

func popString(q *[]string) (string, error) {
	if len(*q) == 0 {
		return "", ErrAborted
	}
	v := (*q)[0]
	*q = (*q)[1:]
	return v, nil
}
