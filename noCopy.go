package typebag

// noCopy can be embedded to provide "go vet" linting
// when an owning type should not - but is - be copied
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
