package schemata

// New1 through New6 declare a schema whose constructor takes the decoded
// properties as positional arguments, in declaration order.

func New1[V, M, A any](name string, driver Driver[V], ctor func(A) M,
	pa Property[V, M, A],
) *Schema[V, M] {
	return NewSchema(name, driver, func(v Values) M {
		return ctor(Arg(v, pa))
	}, pa)
}

func New2[V, M, A, B any](name string, driver Driver[V], ctor func(A, B) M,
	pa Property[V, M, A], pb Property[V, M, B],
) *Schema[V, M] {
	return NewSchema(name, driver, func(v Values) M {
		return ctor(Arg(v, pa), Arg(v, pb))
	}, pa, pb)
}

func New3[V, M, A, B, C any](name string, driver Driver[V], ctor func(A, B, C) M,
	pa Property[V, M, A], pb Property[V, M, B], pc Property[V, M, C],
) *Schema[V, M] {
	return NewSchema(name, driver, func(v Values) M {
		return ctor(Arg(v, pa), Arg(v, pb), Arg(v, pc))
	}, pa, pb, pc)
}

func New4[V, M, A, B, C, D any](name string, driver Driver[V], ctor func(A, B, C, D) M,
	pa Property[V, M, A], pb Property[V, M, B], pc Property[V, M, C], pd Property[V, M, D],
) *Schema[V, M] {
	return NewSchema(name, driver, func(v Values) M {
		return ctor(Arg(v, pa), Arg(v, pb), Arg(v, pc), Arg(v, pd))
	}, pa, pb, pc, pd)
}

func New5[V, M, A, B, C, D, E any](name string, driver Driver[V], ctor func(A, B, C, D, E) M,
	pa Property[V, M, A], pb Property[V, M, B], pc Property[V, M, C], pd Property[V, M, D],
	pe Property[V, M, E],
) *Schema[V, M] {
	return NewSchema(name, driver, func(v Values) M {
		return ctor(Arg(v, pa), Arg(v, pb), Arg(v, pc), Arg(v, pd), Arg(v, pe))
	}, pa, pb, pc, pd, pe)
}

func New6[V, M, A, B, C, D, E, F any](name string, driver Driver[V], ctor func(A, B, C, D, E, F) M,
	pa Property[V, M, A], pb Property[V, M, B], pc Property[V, M, C], pd Property[V, M, D],
	pe Property[V, M, E], pf Property[V, M, F],
) *Schema[V, M] {
	return NewSchema(name, driver, func(v Values) M {
		return ctor(Arg(v, pa), Arg(v, pb), Arg(v, pc), Arg(v, pd), Arg(v, pe), Arg(v, pf))
	}, pa, pb, pc, pd, pe, pf)
}
