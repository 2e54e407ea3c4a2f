// Package classmodel parses a UML-like class description into an in-memory
// class graph.
//
// The input is XML whose document element holds two kinds of records:
//
//	<Model>
//	  <Class name="Board" isRoot="true" documentation="Main board">
//	    <Attribute name="serial" type="string"/>
//	  </Class>
//	  <Class name="Sensor" isRoot="false" documentation="">
//	    <Attribute name="rate" type="int"/>
//	  </Class>
//	  <Aggregation source="Sensor" target="Board" sourceMultiplicity="0..4"/>
//	</Model>
//
// An aggregation reads "target contains source": it appends the source to
// the target's children and gives the source its cardinality. Aggregations
// naming an unknown target are ignored. Parsing never checks references;
// Validate reports dangling names, cycles and root problems as diagnostics.
//
// A Model is immutable once Parse returns and may be shared between
// goroutines.
package classmodel
