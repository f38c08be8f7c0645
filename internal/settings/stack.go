package settings

// Stack is an override stack that keeps at least one entry once seeded.
type Stack[T any] struct {
	items []T
}

func NewStack[T any](base T) Stack[T] {
	return Stack[T]{items: []T{base}}
}

func (s *Stack[T]) Push(v T) { s.items = append(s.items, v) }

func (s *Stack[T]) Top() T { return s.items[len(s.items)-1] }

// Take returns the top entry and pops it unless it is the last one.
func (s *Stack[T]) Take() T {
	v := s.Top()
	if len(s.items) > 1 {
		s.items = s.items[:len(s.items)-1]
	}
	return v
}

func (s *Stack[T]) Len() int { return len(s.items) }
