package core

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pkg/errors"

	"github.com/devblok/vkbind/native"
)

func TestErrorMatchesKind(t *testing.T) {
	c := qt.New(t)
	err := errors.Wrap(misuseError("op", "loader is frozen"), "wrapped")
	c.Assert(err, qt.ErrorIs, ErrMisuse)
	c.Assert(errors.Is(err, ErrGeneral), qt.IsFalse)
	c.Assert(IsKind(err, KindMisuse), qt.IsTrue)
	c.Assert(IsKind(errors.New("plain"), KindMisuse), qt.IsFalse)
}

func TestErrorMatchesResult(t *testing.T) {
	c := qt.New(t)
	err := check("core.Test", native.ErrorDeviceLost)
	c.Assert(err, qt.ErrorIs, ErrNative)
	c.Assert(err, qt.ErrorIs, &Error{Kind: KindNative, Result: native.ErrorDeviceLost})
	c.Assert(errors.Is(err, &Error{Kind: KindNative, Result: native.ErrorOutOfHostMemory}), qt.IsFalse)
	c.Assert(errors.Is(err, native.ErrorDeviceLost), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, `core.Test\(\): native ErrorDeviceLost`)
}

func TestCheckSuccess(t *testing.T) {
	c := qt.New(t)
	c.Assert(check("op", native.Success), qt.IsNil)
	c.Assert(check("op", native.Incomplete), qt.ErrorIs, ErrNative)
	c.Assert(check("op", native.Suboptimal), qt.ErrorIs, ErrNative)
}

func TestResultOf(t *testing.T) {
	c := qt.New(t)
	_, ok := ResultOf(generalError("op", "nope"))
	c.Assert(ok, qt.IsFalse)
	r, ok := ResultOf(nativeErrorf("op", native.Incomplete, "grew"))
	c.Assert(ok, qt.IsTrue)
	c.Assert(r, qt.Equals, native.Incomplete)
}

func TestSafeString(t *testing.T) {
	c := qt.New(t)
	b, err := safeString("op", "name", "triangle")
	c.Assert(err, qt.IsNil)
	c.Assert(b, qt.DeepEquals, []byte("triangle\x00"))

	_, err = safeString("op", "name", "ko\x00ru")
	c.Assert(err, qt.ErrorIs, ErrEncoding)
	_, err = safeString("op", "name", "\xff")
	c.Assert(err, qt.ErrorIs, ErrEncoding)
}

func TestGoString(t *testing.T) {
	c := qt.New(t)
	s, err := goString("op", "name", []byte("abc\x00def"))
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Equals, "abc")

	_, err = goString("op", "name", []byte{0xc3, 0x28, 0})
	c.Assert(err, qt.ErrorIs, ErrEncoding)

	c.Assert(goStringLossy([]byte{'a', 0xff, 'b', 0}), qt.Equals, "a�b")
}
