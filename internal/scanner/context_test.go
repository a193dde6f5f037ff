package scanner

import "testing"

func TestContextStackTolerantPop(t *testing.T) {
	var c contextStack
	c.popExpected(ContextParameter) // pop on empty is a no-op
	if !c.empty() {
		t.Fatalf("expected still empty")
	}
	c.push(ContextCommand)
	c.popExpected(ContextTest) // mismatched pop still removes the top
	if !c.empty() {
		t.Fatalf("expected mismatched pop to still discard the top")
	}
}

func TestContextStackInParameterExpansion(t *testing.T) {
	var c contextStack
	for _, ctx := range []Context{ContextParameter, ContextParamPatternSuffix, ContextParamPatternSubstitute} {
		c.push(ctx)
		if !c.inParameterExpansion() {
			t.Fatalf("expected %v to count as parameter expansion", ctx)
		}
		c.popExpected(ctx)
	}
	c.push(ContextArithmetic)
	if c.inParameterExpansion() {
		t.Fatalf("expected ARITHMETIC to not count as parameter expansion")
	}
}

func TestContextStackCloneIsIndependent(t *testing.T) {
	var c contextStack
	c.push(ContextCommand)
	clone := c.clone()
	clone.push(ContextTest)
	if c.len() != 1 {
		t.Fatalf("expected original stack unaffected by clone push, len=%d", c.len())
	}
}

func TestContextStackSetTop(t *testing.T) {
	var c contextStack
	c.setTop(ContextParameter)
	if c.top() != ContextParameter {
		t.Fatalf("expected setTop to push onto an empty stack")
	}
	c.setTop(ContextParamPatternSuffix)
	if c.top() != ContextParamPatternSuffix || c.len() != 1 {
		t.Fatalf("expected setTop to replace the existing top in place")
	}
}
