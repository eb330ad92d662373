package configs

import "testing"

type testStr string

var _ Configurable = testStr("")

func (testStr) ConfigPath() string {
	return "str"
}

type testList []int

func (testList) ConfigPath() string {
	return "list"
}

func TestValue(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test2.cue",
		"testdata/test.cue",
	}, testSchema)

	str, ok, err := Value[testStr](loader)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || str != "foo" {
		t.Fatalf("got %v %v", str, ok)
	}

	list, ok, err := Value[testList](loader)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || len(list) != 3 {
		t.Fatalf("got %v %v", list, ok)
	}

	empty := NewLoader(nil, testSchema)
	str, ok, err = Value[testStr](empty)
	if err != nil {
		t.Fatal(err)
	}
	if ok || str != "" {
		t.Fatalf("got %v %v", str, ok)
	}
}

func TestValueInvalidFile(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/bad.cue",
	}, testSchema)
	if _, _, err := Value[testStr](loader); err == nil {
		t.Fatal("should error")
	}
}
