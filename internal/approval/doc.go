// Package approval holds the decision rules of the admin console: who may act
// (Gate) and what deciding a pending request does (Decide). Decide is pure; the
// store applies the Transition it returns as one unit.
package approval
