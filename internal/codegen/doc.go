// Package codegen turns a template into C# source.
//
// A bare template (one that starts with literal text) becomes
//
//	using System;
//
//	partial class <Name>Template
//	{
//	    void RenderCore()
//	    {
//	WriteText(@"...");
//	WriteValue(...);
//	    }
//	}
//
// A template that starts with a tag gets no scaffold; its author supplies
// the surrounding declarations through Block tags.
//
// The partial class is not complete on its own. Hand-written code must
// declare the other half, deriving from a base that provides
// WriteText(string) for literal text and WriteValue(object) for expression
// results.
package codegen
