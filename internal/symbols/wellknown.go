package symbols

// Symbols holds canonical pointers to the fixed roster of well-known
// identifier and operator spellings a fresh compilation needs before
// it has read a single source file: the primitive type names, the
// tuple type constructor, and the keyword spellings the parser tests
// identifiers against. WellKnown populates this roster from a single
// Interner so every later "bool"/"int"/"*" compares by pointer too.
type Symbols struct {
	Bool   *Name
	Int    *Name
	String *Name
	Unit   *Name // the nominal name backing the empty-tuple unit type
	Star   *Name // "*", the product/tuple type constructor

	Func   *Name
	Let    *Name
	Mut    *Name
	If     *Name
	Else   *Name
	Loop   *Name
	Break  *Name
	Return *Name

	Infix  *Name
	Prefix *Name
	Left   *Name
	Right  *Name
	None   *Name

	True  *Name
	False *Name
}

// WellKnown interns the fixed roster and returns it. Call once per
// compilation, before scanning any source file, so every stage shares
// the same canonical pointers for these spellings.
func WellKnown(in *Interner) Symbols {
	return Symbols{
		Bool:   in.InternString("bool"),
		Int:    in.InternString("int"),
		String: in.InternString("string"),
		Unit:   in.InternString("unit"),
		Star:   in.InternString("*"),

		Func:   in.InternString("func"),
		Let:    in.InternString("let"),
		Mut:    in.InternString("mut"),
		If:     in.InternString("if"),
		Else:   in.InternString("else"),
		Loop:   in.InternString("loop"),
		Break:  in.InternString("break"),
		Return: in.InternString("return"),

		Infix:  in.InternString("infix"),
		Prefix: in.InternString("prefix"),
		Left:   in.InternString("left"),
		Right:  in.InternString("right"),
		None:   in.InternString("none"),

		True:  in.InternString("true"),
		False: in.InternString("false"),
	}
}
