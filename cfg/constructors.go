package cfg

import "go/ast"

// The New*Node methods allocate a fresh node id from the graph, build
// the concrete node, and add it, mirroring the teacher's own
// AddNode-returns-id convenience constructors in cfg/graph.go.

func (cg *Graph) NewFunctionNode(name string, decl *ast.FuncDecl) *FunctionNode {
	n := &FunctionNode{base: base{id: cg.newID()}, Name: name, Decl: decl}
	cg.AddNode(n)
	return n
}

func (cg *Graph) NewPreconditionNode(text string, expr ast.Expr) *PreconditionNode {
	n := &PreconditionNode{base: base{id: cg.newID()}, Text: text, Expr: expr}
	cg.AddNode(n)
	return n
}

func (cg *Graph) NewPostconditionNode(text string, expr ast.Expr) *PostconditionNode {
	n := &PostconditionNode{base: base{id: cg.newID()}, Text: text, Expr: expr}
	cg.AddNode(n)
	return n
}

func (cg *Graph) NewInvariantNode(text string, expr ast.Expr) *InvariantNode {
	n := &InvariantNode{base: base{id: cg.newID()}, Text: text, Expr: expr}
	cg.AddNode(n)
	return n
}

func (cg *Graph) NewCutoffNode(text string) *CutoffNode {
	n := &CutoffNode{base: base{id: cg.newID()}, Text: text}
	cg.AddNode(n)
	return n
}

func (cg *Graph) NewStatementNode(text string, stmt ast.Stmt) *StatementNode {
	n := &StatementNode{base: base{id: cg.newID()}, Text: text, Stmt: stmt}
	cg.AddNode(n)
	return n
}

func (cg *Graph) NewConditionNode(text string, cond ConditionalExpr) *ConditionNode {
	n := &ConditionNode{base: base{id: cg.newID()}, Text: text, Cond: cond}
	cg.AddNode(n)
	return n
}

func (cg *Graph) NewReturnNode(text string, stmt *ast.ReturnStmt) *ReturnNode {
	n := &ReturnNode{base: base{id: cg.newID()}, Text: text, Stmt: stmt}
	cg.AddNode(n)
	return n
}

func (cg *Graph) NewMergePointNode() *MergePointNode {
	n := &MergePointNode{base: base{id: cg.newID()}}
	cg.AddNode(n)
	return n
}
