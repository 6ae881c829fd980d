package mcard

func (s *Service) SetSlugger(newSlug func(name string) string) {
	s.newSlug = newSlug
}
