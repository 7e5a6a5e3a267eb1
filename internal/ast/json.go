package ast

// isNilNode reports whether n wraps a typed nil pointer (e.g. a nil *Block
// stored in an Expr/Stmt interface), which n == nil does not catch.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Block:
		return v == nil
	case *NumberLit:
		return v == nil
	case *StringLit:
		return v == nil
	case *NilLit:
		return v == nil
	case *ListLit:
		return v == nil
	case *Identifier:
		return v == nil
	case *BinaryExpr:
		return v == nil
	case *UnaryExpr:
		return v == nil
	case *CallExpr:
		return v == nil
	case *IndexExpr:
		return v == nil
	case *SliceExpr:
		return v == nil
	case *FuncLit:
		return v == nil
	case *Assignment:
		return v == nil
	case *ReturnStmt:
		return v == nil
	case *BreakStmt:
		return v == nil
	case *ContinueStmt:
		return v == nil
	case *IfStmt:
		return v == nil
	case *WhileStmt:
		return v == nil
	case *ForStmt:
		return v == nil
	case *ExprStmt:
		return v == nil
	default:
		return false
	}
}

// NodeToMap converts an AST node into a plain map/slice/scalar structure
// suitable for json.Marshal. It exists purely to support the `parse` CLI
// subcommand's debug dump; the evaluator never calls it.
func NodeToMap(n Node) interface{} {
	if n == nil || isNilNode(n) {
		return nil
	}
	switch v := n.(type) {
	case *Block:
		stmts := make([]interface{}, len(v.Stmts))
		for i, s := range v.Stmts {
			stmts[i] = NodeToMap(s)
		}
		return map[string]interface{}{"type": "Block", "stmts": stmts}

	case *NumberLit:
		return map[string]interface{}{"type": "NumberLit", "value": v.Value}
	case *StringLit:
		return map[string]interface{}{"type": "StringLit", "value": v.Value}
	case *NilLit:
		return map[string]interface{}{"type": "NilLit"}
	case *ListLit:
		elems := make([]interface{}, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = NodeToMap(e)
		}
		return map[string]interface{}{"type": "ListLit", "elements": elems}
	case *Identifier:
		return map[string]interface{}{"type": "Identifier", "name": v.Name}
	case *BinaryExpr:
		return map[string]interface{}{
			"type": "BinaryExpr", "op": v.Op,
			"left": NodeToMap(v.Left), "right": NodeToMap(v.Right),
		}
	case *UnaryExpr:
		return map[string]interface{}{
			"type": "UnaryExpr", "op": v.Op, "operand": NodeToMap(v.Operand),
		}
	case *CallExpr:
		args := make([]interface{}, len(v.Args))
		for i, a := range v.Args {
			args[i] = NodeToMap(a)
		}
		return map[string]interface{}{
			"type": "CallExpr", "callee": NodeToMap(v.Callee), "args": args,
		}
	case *IndexExpr:
		return map[string]interface{}{
			"type": "IndexExpr", "target": NodeToMap(v.Target), "index": NodeToMap(v.Index),
		}
	case *SliceExpr:
		return map[string]interface{}{
			"type": "SliceExpr", "target": NodeToMap(v.Target),
			"start": NodeToMap(v.Start), "end": NodeToMap(v.End), "step": NodeToMap(v.Step),
		}
	case *FuncLit:
		return map[string]interface{}{
			"type": "FuncLit", "params": v.Params, "body": NodeToMap(v.Body),
		}
	case *Assignment:
		return map[string]interface{}{
			"type": "Assignment", "target": v.Target, "op": v.Op, "value": NodeToMap(v.Value),
		}

	case *ExprStmt:
		return map[string]interface{}{"type": "ExprStmt", "x": NodeToMap(v.X)}
	case *ReturnStmt:
		return map[string]interface{}{"type": "ReturnStmt", "value": NodeToMap(v.Value)}
	case *BreakStmt:
		return map[string]interface{}{"type": "BreakStmt"}
	case *ContinueStmt:
		return map[string]interface{}{"type": "ContinueStmt"}
	case *IfStmt:
		elseIfs := make([]interface{}, len(v.ElseIfs))
		for i, ei := range v.ElseIfs {
			elseIfs[i] = map[string]interface{}{"cond": NodeToMap(ei.Cond), "body": NodeToMap(ei.Body)}
		}
		return map[string]interface{}{
			"type": "IfStmt", "cond": NodeToMap(v.Cond), "then": NodeToMap(v.Then),
			"elseIfs": elseIfs, "else": NodeToMap(v.Else),
		}
	case *WhileStmt:
		return map[string]interface{}{
			"type": "WhileStmt", "cond": NodeToMap(v.Cond), "body": NodeToMap(v.Body),
		}
	case *ForStmt:
		return map[string]interface{}{
			"type": "ForStmt", "var": v.Var, "iterable": NodeToMap(v.Iterable), "body": NodeToMap(v.Body),
		}

	default:
		return map[string]interface{}{"type": "Unknown"}
	}
}
