package ir

import (
	"sort"
	"strconv"

	"github.com/lico-lang/lico/lang/cst"
	"github.com/lico-lang/lico/lang/parser"
	"github.com/lico-lang/lico/lang/token"
)

// Lower parses src and lowers it straight from the lossless CST to IR,
// the same way original_source's lower_ast operates directly on rowan's
// SyntaxNode/SyntaxToken rather than on a separate typed AST. Parse
// diagnostics and lowering diagnostics are returned together, sorted by
// start offset, so a driver can report both in source order without
// caring which stage produced which.
func Lower(src string) (*Module, []Diagnostic) {
	green, parseErrs := parser.Parse(src)
	root := cst.NewRoot(green)

	ctx := newContext()
	for _, e := range parseErrs {
		ctx.pushError(e.Message, e.Range)
	}

	effects := lowerBlock(ctx, root)
	rootKey := ctx.builder.AddEffects(effects)
	sort.SliceStable(ctx.errors, func(i, j int) bool {
		return ctx.errors[i].Range.Start < ctx.errors[j].Range.Start
	})
	return ctx.builder.Finish(rootKey), ctx.errors
}

// lowerBlock lowers every statement child of block (a PROGRAM node or
// any node whose direct children include statement nodes) into a flat
// effect sequence.
func lowerBlock(ctx *context, block *cst.Node) []Effect {
	var effects []Effect
	for _, stmt := range block.ChildNodes() {
		if e, ok := lowerStmt(ctx, stmt); ok {
			effects = append(effects, e)
		}
	}
	return effects
}

func lowerStmt(ctx *context, n *cst.Node) (Effect, bool) {
	switch n.Kind() {
	case token.VAR_STMT:
		return lowerVarStmt(ctx, n), true
	case token.FUNC_STMT:
		return lowerFuncStmt(ctx, n), true
	case token.FOR_STMT:
		return lowerForStmt(ctx, n), true
	case token.WHILE_STMT:
		return lowerWhileStmt(ctx, n), true
	case token.RETURN_STMT:
		return lowerReturnStmt(ctx, n), true
	case token.BREAK_STMT:
		if !ctx.isInLoop() {
			ctx.pushError("break outside of a loop", n.Range())
		}
		return Effect{Kind: EffectBreakLoop}, true
	case token.CONTINUE_STMT:
		if !ctx.isInLoop() {
			ctx.pushError("continue outside of a loop", n.Range())
		}
		return Effect{Kind: EffectContinueLoop}, true
	case token.EXPR_STMT:
		exprs := n.ChildNodes()
		if len(exprs) == 0 {
			return Effect{}, false
		}
		v := lowerExpr(ctx, exprs[0])
		return Effect{Kind: EffectNoEffectValue, Value: v}, true
	case token.ATTR_STMT:
		return lowerAttrStmt(ctx, n), true
	}
	ctx.pushError("unrecognized statement", n.Range())
	return Effect{}, false
}

func lowerVarStmt(ctx *context, n *cst.Node) Effect {
	nameNode := n.FirstChildNodeOfKind(token.NAME)
	name := nameText(nameNode)

	exprs := n.ChildNodes()
	var valueNode *cst.Node
	if len(exprs) > 0 && exprs[len(exprs)-1].Kind() != token.NAME {
		valueNode = exprs[len(exprs)-1]
	}

	var value ValueKey
	if valueNode != nil {
		value = lowerExpr(ctx, valueNode)
	} else {
		value = ctx.builder.AddValue(Value{Kind: ValueNil})
	}

	// the initializer, if any, is lowered before the name is declared:
	// `var x = x` must resolve the right-hand x to an outer binding, not
	// to the one this statement is about to introduce.
	sym := ctx.declare(name)
	return Effect{Kind: EffectMakeLocal, Name: sym, Value: value}
}

// lowerAttrStmt lowers `target = expr`. Only a NAME (a bare local),
// FIELD_EXPR or INDEX_EXPR target is legal; anything else is an error
// recorded rather than a panic, since an erroneous target still has to
// lower to *something* so the rest of the block can be checked.
func lowerAttrStmt(ctx *context, n *cst.Node) Effect {
	children := n.ChildNodes()
	if len(children) < 2 {
		ctx.pushError("malformed assignment", n.Range())
		return Effect{Kind: EffectNoEffectValue}
	}
	target, rhs := children[0], children[1]
	value := lowerExpr(ctx, rhs)

	switch target.Kind() {
	case token.LOCAL_VAR:
		name := identText(target)
		sym, ok := ctx.resolve(name)
		if !ok {
			ctx.pushError("assignment to undeclared variable "+name, target.Range())
			return Effect{Kind: EffectNoEffectValue, Value: value}
		}
		return Effect{Kind: EffectSetLocal, Local: sym, Value: value}
	case token.INDEX_EXPR:
		parts := target.ChildNodes()
		if len(parts) < 2 {
			ctx.pushError("malformed index assignment", target.Range())
			return Effect{Kind: EffectNoEffectValue, Value: value}
		}
		tgt := lowerExpr(ctx, parts[0])
		idx := lowerExpr(ctx, parts[1])
		return Effect{Kind: EffectSetIndex, Target: tgt, Index: idx, Value: value}
	case token.FIELD_EXPR:
		parts := target.ChildNodes()
		if len(parts) < 1 {
			ctx.pushError("malformed field assignment", target.Range())
			return Effect{Kind: EffectNoEffectValue, Value: value}
		}
		tgt := lowerExpr(ctx, parts[0])
		field := ctx.builder.AddString(nameText(target.FirstChildNodeOfKind(token.NAME)))
		return Effect{Kind: EffectSetField, Target: tgt, Field: field, Value: value}
	}
	ctx.pushError("invalid assignment target", target.Range())
	return Effect{Kind: EffectNoEffectValue, Value: value}
}

// lowerFuncStmt lowers `func NamePath (-> NAME)? (params) body end`. The
// `-> NAME` clause, when present, is the method name to install on the
// table NamePath resolves to (mirroring `recv->name(args)` method-call
// syntax), not a parameter: `func account->withdraw(self, amount)` binds
// a SetMethod on `account` named "withdraw", with `self` declared like
// any other ordinary parameter and auto-filled by the VM's CallMethod
// dispatch (Table.Method.ImplicitSelf).
func lowerFuncStmt(ctx *context, n *cst.Node) Effect {
	path := n.FirstChildNodeOfKind(token.NAME_PATH)
	names := namePathParts(path)
	methodTok := n.FirstTokenOfKind(token.ARROW)

	fn := lowerFuncBody(ctx, n)

	if methodTok == nil && len(names) == 1 {
		sym := ctx.declare(names[0])
		return Effect{Kind: EffectMakeFunc, Name: sym, Func: fn}
	}
	table, ok := ctx.resolve(names[0])
	if !ok {
		ctx.pushError("assignment to undeclared variable "+names[0], n.Range())
	}
	if methodTok != nil {
		methodName := n.FirstChildNodeOfKind(token.NAME)
		pathKey := ctx.builder.AddStringSlice(names[1:])
		method := ctx.builder.AddString(nameText(methodName))
		return Effect{Kind: EffectSetMethod, Table: table, Path: pathKey, Method: method, Func: fn}
	}
	pathKey := ctx.builder.AddStringSlice(names[1:])
	return Effect{Kind: EffectSetFieldFunc, Table: table, Path: pathKey, Func: fn}
}

// lowerFuncBody lowers a FUNC_STMT or FUNC_CONST node's parameter list
// and body into a Function, in a fresh ScopeNew scope so the function's
// locals never see the enclosing loop's break/continue eligibility. The
// `-> NAME` clause on a FUNC_STMT (if any) names the method being
// declared, not a parameter, so it contributes nothing here — a method's
// self receiver is whatever ordinary parameter the author writes first.
func lowerFuncBody(ctx *context, n *cst.Node) FunctionKey {
	marker := ctx.startScope(ScopeNew)
	defer ctx.finishScope(marker)

	var params []SymbolKey
	if paramList := n.FirstChildNodeOfKind(token.PARAM_LIST); paramList != nil {
		for _, p := range paramList.ChildNodesOfKind(token.NAME) {
			params = append(params, ctx.declare(nameText(p)))
		}
	}

	var body []Effect
	for _, stmt := range n.ChildNodes() {
		switch stmt.Kind() {
		case token.NAME_PATH, token.NAME, token.PARAM_LIST, token.TABLE_FIELD_NAME_IDENT:
			continue // the function's header, not its body
		}
		if e, ok := lowerStmt(ctx, stmt); ok {
			body = append(body, e)
		}
	}
	bodyKey := ctx.builder.AddEffects(body)
	return ctx.builder.AddFunction(Function{Params: params, Effects: bodyKey})
}

// lowerForStmt lowers `for name in expr do ... end`. ChildNodes order
// per the grammar is [NAME, iterable expr, body statements...]; the
// loop variable is declared only after the iterable is lowered, and
// only the remaining children are body statements.
func lowerForStmt(ctx *context, n *cst.Node) Effect {
	children := n.ChildNodes()
	if len(children) < 2 {
		ctx.pushError("malformed for statement", n.Range())
		return Effect{Kind: EffectLoopFor}
	}
	iterable := lowerExpr(ctx, children[1])

	marker := ctx.startScope(ScopeLoop)
	sym := ctx.declare(nameText(children[0]))
	body := lowerLoopBody(ctx, children[2:])
	ctx.finishScope(marker)

	bodyKey := ctx.builder.AddEffects(body)
	return Effect{Kind: EffectLoopFor, Variable: sym, Iterable: iterable, Body: bodyKey}
}

// lowerWhileStmt lowers `while expr do ... end`: [condition, body
// statements...].
func lowerWhileStmt(ctx *context, n *cst.Node) Effect {
	children := n.ChildNodes()
	if len(children) < 1 {
		ctx.pushError("malformed while statement", n.Range())
		return Effect{Kind: EffectLoopWhile}
	}
	cond := lowerExpr(ctx, children[0])

	marker := ctx.startScope(ScopeLoop)
	body := lowerLoopBody(ctx, children[1:])
	ctx.finishScope(marker)

	bodyKey := ctx.builder.AddEffects(body)
	return Effect{Kind: EffectLoopWhile, Condition: cond, Body: bodyKey}
}

// lowerLoopBody lowers a loop's body statement nodes, already sliced
// by the caller to exclude the iterable/condition expression.
func lowerLoopBody(ctx *context, body []*cst.Node) []Effect {
	var effects []Effect
	for _, stmt := range body {
		if e, ok := lowerStmt(ctx, stmt); ok {
			effects = append(effects, e)
		}
	}
	return effects
}

func lowerReturnStmt(ctx *context, n *cst.Node) Effect {
	children := n.ChildNodes()
	if len(children) == 0 {
		nilVal := ctx.builder.AddValue(Value{Kind: ValueNil})
		return Effect{Kind: EffectReturn, Value: nilVal}
	}
	return Effect{Kind: EffectReturn, Value: lowerExpr(ctx, children[0])}
}

// lowerExpr lowers n, an expression node, to a Value and returns its
// key. A node kind lowerExpr doesn't recognize lowers to a Nil value
// with a diagnostic, so the caller always gets a usable key back.
func lowerExpr(ctx *context, n *cst.Node) ValueKey {
	switch n.Kind() {
	case token.LITERAL:
		return lowerLiteral(ctx, n)
	case token.LOCAL_VAR:
		name := identText(n)
		sym, ok := ctx.resolve(name)
		if !ok {
			// Not declared anywhere in scope: print and println are left
			// for the compiler to bind as builtins; any other name is
			// reported as undefined. Either way the reference gets a
			// shared global symbol so lowering can go on.
			if name != "print" && name != "println" {
				ctx.pushError("undefined name "+name, n.Range())
			}
			sym = ctx.globalSymbol(name)
		}
		return ctx.builder.AddValue(Value{Kind: ValueLocal, Local: sym})
	case token.PAREN_EXPR:
		inner := n.ChildNodes()
		if len(inner) == 0 {
			return ctx.builder.AddValue(Value{Kind: ValueNil})
		}
		return lowerExpr(ctx, inner[0])
	case token.PREFIX_EXPR:
		return lowerPrefixExpr(ctx, n)
	case token.BINARY_EXPR:
		return lowerBinaryExpr(ctx, n)
	case token.CALL_EXPR:
		return lowerCallExpr(ctx, n)
	case token.METHOD_CALL_EXPR:
		return lowerMethodCallExpr(ctx, n)
	case token.INDEX_EXPR:
		parts := n.ChildNodes()
		v := lowerExpr(ctx, parts[0])
		idx := lowerExpr(ctx, parts[1])
		return ctx.builder.AddValue(Value{Kind: ValueIndex, CallValue: v, Index: idx})
	case token.FIELD_EXPR:
		parts := n.ChildNodes()
		v := lowerExpr(ctx, parts[0])
		name := ctx.builder.AddString(nameText(n.FirstChildNodeOfKind(token.NAME)))
		return ctx.builder.AddValue(Value{Kind: ValueField, CallValue: v, CallName: name})
	case token.ARRAY_CONST:
		var elems []ValueKey
		for _, e := range n.ChildNodes() {
			elems = append(elems, lowerExpr(ctx, e))
		}
		slice := ctx.builder.AddValueSlice(elems)
		return ctx.builder.AddValue(Value{Kind: ValueArray, Elems: slice})
	case token.TABLE_CONST:
		return lowerTableConst(ctx, n)
	case token.FUNC_CONST:
		fn := lowerFuncBody(ctx, n)
		return ctx.builder.AddValue(Value{Kind: ValueFunction, Func: fn})
	case token.IF_EXPR:
		return lowerIfExpr(ctx, n)
	case token.DO_EXPR:
		marker := ctx.startScope(ScopeNest)
		body := lowerBlock(ctx, n)
		ctx.finishScope(marker)
		bodyKey := ctx.builder.AddEffects(body)
		nilVal := ctx.builder.AddValue(Value{Kind: ValueNil})
		return ctx.builder.AddValue(Value{Kind: ValueBlock, Effects: bodyKey, Tail: nilVal})
	}
	ctx.pushError("unrecognized expression", n.Range())
	return ctx.builder.AddValue(Value{Kind: ValueNil})
}

func lowerLiteral(ctx *context, n *cst.Node) ValueKey {
	tok := n.Tokens()
	if len(tok) == 0 {
		return ctx.builder.AddValue(Value{Kind: ValueNil})
	}
	t := tok[0]
	switch t.Kind() {
	case token.INT:
		i, err := strconv.ParseInt(t.Text(), 0, 64)
		if err != nil {
			ctx.pushError("invalid integer literal", t.Range())
		}
		return ctx.builder.AddValue(Value{Kind: ValueInt, Int: i})
	case token.FLOAT:
		f, err := strconv.ParseFloat(t.Text(), 64)
		if err != nil {
			ctx.pushError("invalid float literal", t.Range())
		}
		return ctx.builder.AddValue(Value{Kind: ValueFloat, Float: f})
	case token.STRING:
		return ctx.builder.AddValue(Value{Kind: ValueString, Str: stringLiteralBody(t.Text())})
	case token.TRUE:
		return ctx.builder.AddValue(Value{Kind: ValueBool, Bool: true})
	case token.FALSE:
		return ctx.builder.AddValue(Value{Kind: ValueBool, Bool: false})
	case token.NIL:
		return ctx.builder.AddValue(Value{Kind: ValueNil})
	}
	ctx.pushError("unrecognized literal", t.Range())
	return ctx.builder.AddValue(Value{Kind: ValueNil})
}

// stringLiteralBody strips the surrounding quote characters. Escape
// sequences are not decoded, here or later: a backslash and the
// characters after it are kept in the string exactly as written.
func stringLiteralBody(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func lowerPrefixExpr(ctx *context, n *cst.Node) ValueKey {
	opTok := n.Tokens()
	var op PrefixOp
	if len(opTok) > 0 {
		op = prefixOpFor(opTok[0].Kind())
	}
	operand := n.ChildNodes()
	if len(operand) == 0 {
		return ctx.builder.AddValue(Value{Kind: ValuePrefix, PrefOp: op})
	}
	v := lowerExpr(ctx, operand[0])
	return ctx.builder.AddValue(Value{Kind: ValuePrefix, PrefOp: op, Lhs: v})
}

func prefixOpFor(k token.SyntaxKind) PrefixOp {
	switch k {
	case token.PLUS:
		return PrefixPlus
	case token.MINUS:
		return PrefixMinus
	case token.NOT_KW, token.BANG:
		return PrefixNot
	case token.TILDE:
		return PrefixBitNot
	}
	return PrefixMissing
}

func lowerBinaryExpr(ctx *context, n *cst.Node) ValueKey {
	operands := n.ChildNodes()
	if len(operands) < 2 {
		return ctx.builder.AddValue(Value{Kind: ValueBinary, BinOp: BinaryMissing})
	}
	lhs := lowerExpr(ctx, operands[0])
	rhs := lowerExpr(ctx, operands[1])
	op := BinaryMissing
	for _, t := range n.Tokens() {
		if o := binaryOpFor(t.Kind()); o != BinaryMissing {
			op = o
			break
		}
	}
	return ctx.builder.AddValue(Value{Kind: ValueBinary, BinOp: op, Lhs: lhs, Rhs: rhs})
}

func binaryOpFor(k token.SyntaxKind) BinaryOp {
	switch k {
	case token.PLUS:
		return BinaryAdd
	case token.MINUS:
		return BinarySub
	case token.STAR:
		return BinaryMul
	case token.SLASH:
		return BinaryDiv
	case token.PERCENT:
		return BinaryMod
	case token.LT2:
		return BinaryShl
	case token.GT2:
		return BinaryShr
	case token.DOT2:
		return BinaryConcat
	case token.EQ2:
		return BinaryEq
	case token.BANGEQ:
		return BinaryNe
	case token.LT:
		return BinaryLt
	case token.LTEQ:
		return BinaryLe
	case token.GT:
		return BinaryGt
	case token.GTEQ:
		return BinaryGe
	case token.AND_KW:
		return BinaryAnd
	case token.OR_KW:
		return BinaryOr
	case token.AMP:
		return BinaryBitAnd
	case token.PIPE:
		return BinaryBitOr
	case token.CARET:
		return BinaryBitXor
	}
	return BinaryMissing
}

func lowerCallExpr(ctx *context, n *cst.Node) ValueKey {
	children := n.ChildNodes()
	if len(children) == 0 {
		return ctx.builder.AddValue(Value{Kind: ValueNil})
	}
	callee := lowerExpr(ctx, children[0])
	var argList *cst.Node
	if len(children) > 1 {
		argList = children[1]
	}
	args := lowerArgList(ctx, argList)
	return ctx.builder.AddValue(Value{Kind: ValueCall, CallValue: callee, Args: args})
}

func lowerMethodCallExpr(ctx *context, n *cst.Node) ValueKey {
	children := n.ChildNodes()
	if len(children) == 0 {
		return ctx.builder.AddValue(Value{Kind: ValueNil})
	}
	receiver := lowerExpr(ctx, children[0])
	name := ctx.builder.AddString(nameText(n.FirstChildNodeOfKind(token.NAME)))
	args := lowerArgList(ctx, n.FirstChildNodeOfKind(token.ARG_LIST))
	return ctx.builder.AddValue(Value{Kind: ValueMethodCall, CallValue: receiver, CallName: name, Args: args})
}

func lowerArgList(ctx *context, argList *cst.Node) ValueSliceKey {
	var args []ValueKey
	if argList != nil {
		for _, a := range argList.ChildNodes() {
			args = append(args, lowerExpr(ctx, a))
		}
	}
	return ctx.builder.AddValueSlice(args)
}

func lowerTableConst(ctx *context, n *cst.Node) ValueKey {
	var fields []TableField
	for _, f := range n.ChildNodesOfKind(token.TABLE_FIELD) {
		fields = append(fields, lowerTableField(ctx, f))
	}
	return ctx.builder.AddValue(Value{Kind: ValueTable, Fields: fields})
}

func lowerTableField(ctx *context, n *cst.Node) TableField {
	children := n.ChildNodes()
	if len(children) == 0 {
		return TableField{}
	}
	first := children[0]
	switch first.Kind() {
	case token.TABLE_FIELD_NAME_IDENT:
		name := nameText(first.FirstChildNodeOfKind(token.NAME))
		key := ctx.builder.AddString(name)
		value := lowerFieldValue(ctx, n, children)
		return TableField{Name: TableKeyName{Kind: TableKeyString, Name: key}, Value: value}
	case token.TABLE_FIELD_NAME_EXPR:
		exprs := first.ChildNodes()
		var keyVal ValueKey
		if len(exprs) > 0 {
			keyVal = lowerExpr(ctx, exprs[0])
		}
		var value ValueKey
		if len(children) > 1 {
			value = lowerExpr(ctx, children[1])
		}
		return TableField{Name: TableKeyName{Kind: TableKeyValue, Value: keyVal}, Value: value}
	}
	// bare positional entry: Name is left as the zero TableKeyName, which
	// the compiler loads as a nil key; building the table then raises a
	// runtime exception because the key is not a string.
	value := lowerExpr(ctx, first)
	return TableField{Value: value}
}

// lowerFieldValue handles both the `name = expr` table field case and
// the `func name(...) ... end` method-sugar case, whose TABLE_FIELD
// wraps a TABLE_FIELD_NAME_IDENT plus a PARAM_LIST/body rather than a
// second expression child.
func lowerFieldValue(ctx *context, field *cst.Node, children []*cst.Node) ValueKey {
	if field.FirstChildNodeOfKind(token.PARAM_LIST) != nil {
		fn := lowerFuncBody(ctx, field)
		return ctx.builder.AddValue(Value{Kind: ValueFunction, Func: fn})
	}
	if len(children) > 1 {
		return lowerExpr(ctx, children[1])
	}
	return ctx.builder.AddValue(Value{Kind: ValueNil})
}

// lowerIfExpr lowers `if cond then ... [elif cond then ...]* [else ...]
// end`. The parser emits every branch as a flat child sequence (no
// wrapper node for the initial `if` branch, a dedicated ELIF_BRANCH /
// ELSE_BRANCH node for the rest), so the else-chain has to be folded
// from the last branch backward: each elif's "else" is the nested
// Branch value built from everything after it.
func lowerIfExpr(ctx *context, n *cst.Node) ValueKey {
	children := n.ChildNodes()
	if len(children) == 0 {
		return ctx.builder.AddValue(Value{Kind: ValueNil})
	}
	nilVal := ctx.builder.AddValue(Value{Kind: ValueNil})

	var elifs []*cst.Node
	var elseBranch *cst.Node
	splitAt := len(children)
	for i, c := range children[1:] {
		switch c.Kind() {
		case token.ELIF_BRANCH:
			elifs = append(elifs, c)
			if splitAt == len(children) {
				splitAt = i + 1
			}
		case token.ELSE_BRANCH:
			elseBranch = c
			if splitAt == len(children) {
				splitAt = i + 1
			}
		}
	}
	cond := lowerExpr(ctx, children[0])
	thenMarker := ctx.startScope(ScopeNest)
	thenEffects := lowerLoopBody(ctx, children[1:splitAt])
	ctx.finishScope(thenMarker)
	thenKey := ctx.builder.AddEffects(thenEffects)

	elseKey, elseTail := lowerElseChain(ctx, elifs, elseBranch, nilVal)

	return ctx.builder.AddValue(Value{
		Kind: ValueBranch, Condition: cond,
		Then: thenKey, ThenTail: nilVal,
		Else: elseKey, ElseTail: elseTail,
	})
}

// lowerElseChain folds the elif/else tail into nested Branch values,
// innermost (the final else, or nil if there isn't one) first.
func lowerElseChain(ctx *context, elifs []*cst.Node, elseBranch *cst.Node, nilVal ValueKey) (EffectsKey, ValueKey) {
	tailKey := ctx.builder.AddEffects(nil)
	tailVal := nilVal
	if elseBranch != nil {
		marker := ctx.startScope(ScopeNest)
		effects := lowerBlock(ctx, elseBranch)
		ctx.finishScope(marker)
		tailKey = ctx.builder.AddEffects(effects)
		tailVal = nilVal
	}

	for i := len(elifs) - 1; i >= 0; i-- {
		children := elifs[i].ChildNodes()
		if len(children) == 0 {
			continue
		}
		cond := lowerExpr(ctx, children[0])
		marker := ctx.startScope(ScopeNest)
		effects := lowerLoopBody(ctx, children[1:])
		ctx.finishScope(marker)
		thenKey := ctx.builder.AddEffects(effects)

		branch := ctx.builder.AddValue(Value{
			Kind: ValueBranch, Condition: cond,
			Then: thenKey, ThenTail: nilVal,
			Else: tailKey, ElseTail: tailVal,
		})
		tailKey = ctx.builder.AddEffects(nil)
		tailVal = branch
	}

	return tailKey, tailVal
}

func nameText(n *cst.Node) string {
	if n == nil {
		return ""
	}
	if t := n.FirstTokenOfKind(token.IDENT); t != nil {
		return t.Text()
	}
	return ""
}

func identText(n *cst.Node) string {
	return nameText(n)
}

func namePathParts(n *cst.Node) []string {
	if n == nil {
		return nil
	}
	var parts []string
	for _, name := range n.ChildNodesOfKind(token.NAME) {
		parts = append(parts, nameText(name))
	}
	return parts
}

func tokenText(t *cst.Token) string {
	if t == nil {
		return ""
	}
	return t.Text()
}
