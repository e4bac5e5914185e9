package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the import-binding table:
// - Named, aliased, default, and namespace imports are collected
// - ResolvesTo matches by binding identity, not identifier text
// - Names re-declared in the file no longer resolve to their import
// - Unimported names resolve to nothing

func collectFrom(t *testing.T, source string) *Bindings {
	t.Helper()
	file := parse(t, source)
	return CollectBindings(file.Root, file.Source)
}

func TestCollectBindings_NamedImport(t *testing.T) {
	b := collectFrom(t, `import {FormattedMessage} from 'react-intl';`)

	bind, ok := b.Lookup("FormattedMessage")
	require.True(t, ok)
	assert.Equal(t, "react-intl", bind.Module)
	assert.Equal(t, "FormattedMessage", bind.Imported)
	assert.True(t, b.ResolvesTo("FormattedMessage", "react-intl", "FormattedMessage"))
}

func TestCollectBindings_AliasedImport(t *testing.T) {
	b := collectFrom(t, `import {FormattedMessage as FM} from 'react-intl';`)

	assert.True(t, b.ResolvesTo("FM", "react-intl", "FormattedMessage"))

	// The original export name is not a local binding.
	_, ok := b.Lookup("FormattedMessage")
	assert.False(t, ok)
}

func TestCollectBindings_DefaultImport(t *testing.T) {
	b := collectFrom(t, `import React from 'react';`)

	bind, ok := b.Lookup("React")
	require.True(t, ok)
	assert.True(t, bind.Default)
	assert.Equal(t, "react", bind.Module)
}

func TestCollectBindings_NamespaceImport(t *testing.T) {
	b := collectFrom(t, `import * as Intl from 'react-intl';`)

	bind, ok := b.Lookup("Intl")
	require.True(t, ok)
	assert.True(t, bind.Namespace)
	assert.Equal(t, "react-intl", bind.Module)
}

func TestCollectBindings_MixedImport(t *testing.T) {
	b := collectFrom(t, `import React, {useState} from 'react';`)

	def, ok := b.Lookup("React")
	require.True(t, ok)
	assert.True(t, def.Default)

	named, ok := b.Lookup("useState")
	require.True(t, ok)
	assert.Equal(t, "useState", named.Imported)
}

func TestCollectBindings_ShadowedImport(t *testing.T) {
	b := collectFrom(t, `
import {FormattedMessage} from 'react-intl';
const FormattedMessage = () => null;
`)

	_, ok := b.Lookup("FormattedMessage")
	assert.False(t, ok)
	assert.False(t, b.ResolvesTo("FormattedMessage", "react-intl", "FormattedMessage"))
}

func TestCollectBindings_WrongModule(t *testing.T) {
	b := collectFrom(t, `import {FormattedMessage} from 'other-intl';`)

	assert.False(t, b.ResolvesTo("FormattedMessage", "react-intl", "FormattedMessage"))
}

func TestCollectBindings_UnimportedName(t *testing.T) {
	b := collectFrom(t, `const x = 1;`)

	_, ok := b.Lookup("FormattedMessage")
	assert.False(t, ok)
}
