/*
Package dsl provides a fluent builder for Tapestry story graphs.

It is an alternative to YAML, JSON or markdown stories, handy for tests and
for generating stories from code. Keys are declared on the node a choice
leads to, the same way the persona and shadow tables are keyed.

Example usage:

	b := dsl.New()

	b.Add("title").Title("Tapestry", "", "a short story").Go("s01")

	b.Add("s01").Choice("Who are you?").
		Option("a wanderer", "s02a").
		Option("a keeper", "s02b")

	b.Add("s02a").Reveal("A wanderer.").Persona("A").Shadow("X").GoDynamic()
	b.Add("s02b").Reveal("A keeper.").Persona("B").Shadow("X").GoDynamic()

	b.Add("s07_AX").Narration("The road.").Go("end")
	b.Add("s07_BX").Narration("The hearth.").Go("end")
	b.Add("end").End()

	loader, err := b.Build()
	// ... pass loader to tapestry.New(ctx, "", tapestry.WithLoader(loader))
*/
package dsl
