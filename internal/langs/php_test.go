package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

const phpSample = `<?php

use App\Models\User;

trait Greetable {
    public function greet(): string {
        return "hi";
    }
}

class Person {
    private string $name;
    public static int $count = 0;

    public function __construct(string $name) {
        $this->name = $name;
    }

    protected function rename(string $name): void {
        $this->name = $name;
    }
}
`

func TestPHPExtractor_CanProcess(t *testing.T) {
	e := NewPHPExtractor()
	assert.True(t, e.CanProcess("index.php"))
	assert.False(t, e.CanProcess("index.rb"))
}

func TestPHPExtractor_UseStatement(t *testing.T) {
	e := NewPHPExtractor()
	file, err := e.Process(phpSample, "sample.php", options.Default())
	require.NoError(t, err)

	var imp *ir.Import
	for _, c := range file.Children {
		if i, ok := c.(*ir.Import); ok {
			imp = i
		}
	}
	require.NotNil(t, imp)
	assert.Equal(t, "use", imp.ImportKind)
	assert.Contains(t, imp.Module, "User")
}

func TestPHPExtractor_TraitDecorator(t *testing.T) {
	e := NewPHPExtractor()
	file, err := e.Process(phpSample, "sample.php", options.Default())
	require.NoError(t, err)

	var trait *ir.Class
	for _, c := range file.Children {
		if class, ok := c.(*ir.Class); ok && class.Name == "Greetable" {
			trait = class
		}
	}
	require.NotNil(t, trait)
	assert.Contains(t, trait.Decorators, "trait")
}

func TestPHPExtractor_ClassMemberVisibilityAndType(t *testing.T) {
	e := NewPHPExtractor()
	file, err := e.Process(phpSample, "sample.php", options.Default())
	require.NoError(t, err)

	var person *ir.Class
	for _, c := range file.Children {
		if class, ok := c.(*ir.Class); ok && class.Name == "Person" {
			person = class
		}
	}
	require.NotNil(t, person)

	var nameField, countField *ir.Field
	var rename *ir.Function
	for _, c := range person.Children {
		switch v := c.(type) {
		case *ir.Field:
			if v.Name == "name" {
				nameField = v
			}
			if v.Name == "count" {
				countField = v
			}
		case *ir.Function:
			if v.Name == "rename" {
				rename = v
			}
		}
	}
	require.NotNil(t, nameField)
	assert.Equal(t, ir.Private, nameField.Visibility)
	require.NotNil(t, nameField.FieldType)
	assert.Equal(t, "string", nameField.FieldType.Name)

	require.NotNil(t, countField)
	assert.Equal(t, ir.Public, countField.Visibility)
	assert.Contains(t, countField.Modifiers, ir.ModStatic)

	require.NotNil(t, rename)
	assert.Equal(t, ir.Protected, rename.Visibility)
	require.Len(t, rename.Parameters, 1)
	assert.Contains(t, rename.Parameters[0].Name, "name")
}
