package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := map[string]Kind{
		"exit": Exit,
		"cd":   ChangeDirectory,
		"help": Help,
		"echo": Echo,
		"ls":   External,
		"Echo": External,
		"":     External,
	}

	for name, kind := range cases {
		t.Run(name, func(t *testing.T) {
			var argv Argv
			if name != "" {
				argv = Argv{name, "arg"}
			}
			cmd := Classify(argv)
			assert.Equal(t, kind, cmd.Kind)
			assert.Equal(t, argv, cmd.Argv)
		})
	}
}

func TestInternalKinds(t *testing.T) {
	assert.Len(t, InternalKinds, len(internalCommands))
	for _, kind := range InternalKinds {
		assert.True(t, kind.IsInternal())
		assert.Equal(t, kind, internalCommands[kind.String()])
	}
	assert.False(t, External.IsInternal())
}
