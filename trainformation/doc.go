// Package trainformation models the ordered set of vehicles coupled
// together to cover a single node (service trip or maintenance slot).
package trainformation
