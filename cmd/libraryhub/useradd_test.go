package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPasswordFromPipe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "newline", input: "secret-pass\n", want: "secret-pass"},
		{name: "crlf", input: "secret-pass\r\n", want: "secret-pass"},
		{name: "no newline", input: "secret-pass", want: "secret-pass"},
		{name: "keeps inner spaces", input: " a b \n", want: " a b "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := readPassword(strings.NewReader(tt.input), &prompt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, prompt.String())
		})
	}
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "report", "useradd"}, names)

	root.SetArgs([]string{"migrate", "sideways"})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	assert.Error(t, root.Execute())
}

func TestMigrationsSource(t *testing.T) {
	assert.Equal(t, "file://migrations/library", migrationsSource("migrations/library"))
}
