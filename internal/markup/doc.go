// Package markup reads UI documents and assembles them into a uitree.Tree.
//
// Two source forms describe the same element model. XML is the native form:
//
//	<Window Title="Demo">
//	  <Label Text="Hi"/>
//	  <Button Content="Go" Click="OnGo"/>
//	</Window>
//
// YAML mirrors it with one mapping per element:
//
//	element: Window
//	attributes: {Title: Demo}
//	children:
//	  - element: Label
//	    attributes: {Text: Hi}
//	  - element: Button
//	    text: Go
//	    attributes: {Click: OnGo}
//
// Both readers produce the same start, end and character events and feed
// them to a uitree.Assembler. Namespaces are dropped; only local element and
// attribute names reach the tree.
package markup
