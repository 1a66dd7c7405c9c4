package analyzer

import (
	"github.com/pontaoski/s3c/ast"
	"github.com/pontaoski/s3c/errors"
	"github.com/pontaoski/s3c/types"
)

// checkAssignment checks src against a destination of type expected, or
// defers the check when src is not typed yet.
func (c *Context) checkAssignment(loc errors.Location, name string, expected types.Type, src ast.Expression) {
	if types.IsNone(src.Type()) {
		c.deferCheck(DeferredCheck{Kind: AssignCheck, Location: loc, Name: name, Expected: expected, Node: src})
		return
	}
	c.checkAssignTypes(loc, name, expected, src.Type(), src)
}

// checkAssignTypes reports a mismatch between expected and found. Unknown
// types on either side were already reported and are skipped.
func (c *Context) checkAssignTypes(loc errors.Location, name string, expected, found types.Type, src ast.Expression) {
	if types.IsUnknown(expected) || types.IsUnknown(found) {
		return
	}

	expectedArray, foundArray := types.IsArray(expected), types.IsArray(found)
	switch {
	case expectedArray && foundArray:
		if !expected.Compare(found) {
			c.report(errors.TypeAssignedError{Location: loc, Name: name, Expected: expected, Found: found})
		}
		return
	case expectedArray:
		c.report(errors.BadArrayUsage{Location: loc, Name: name})
		return
	case foundArray:
		if v, ok := src.(*ast.Variable); ok {
			c.report(errors.BadArrayUsage{Location: loc, Name: v.Name})
		} else {
			c.report(errors.TypeAssignedError{Location: loc, Name: name, Expected: expected, Found: found})
		}
		return
	}

	found = found.Evaluated()
	if expected.Compare(found) {
		return
	}
	if types.IsCastableTo(expected, found) {
		c.report(errors.TypeAssignedWarning{Location: loc, Name: name, Expected: expected, Found: found})
		return
	}
	c.report(errors.TypeAssignedError{Location: loc, Name: name, Expected: expected, Found: found})
}

// checkReturn checks a returned value of type found against the declared
// return type of function.
func (c *Context) checkReturn(loc errors.Location, function string, expected, found types.Type, hasValue bool) {
	if types.IsNil(expected) {
		if hasValue {
			c.report(errors.UnexpectedReturn{Location: loc, Function: function})
		}
		return
	}
	if hasValue && types.IsUnknown(found) {
		return
	}

	found = found.Evaluated()
	if expected.Compare(found) {
		return
	}
	if types.IsCastableTo(expected, found) {
		c.report(errors.ReturnTypeWarning{Location: loc, Function: function, Expected: expected, Found: found})
		return
	}
	c.report(errors.ReturnTypeError{Location: loc, Function: function, Expected: expected, Found: found})
}
