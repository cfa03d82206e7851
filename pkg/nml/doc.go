// Package nml implements the NML ("Node Markup Language") document format:
// the XML dialect canvas documents are persisted in.
//
// NML is a whole-document format: one <meta> block, one <canvas> viewport
// snapshot, the full page set and the full link list under a versioned
// <nml> root. A minimal document looks like:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<nml version="2.0">
//	  <meta title="Trip Planning" created="2025-06-01T10:00:00Z" />
//	  <canvas zoom="1" center-x="0" center-y="0" grid="true" theme="light" />
//	  <pages>
//	    <page id="page-1" x="10" y="20" width="300" height="200" color="blue" created="2025-06-01T10:00:00Z">
//	      <title>Packing</title>
//	      <content><![CDATA[remember the **tent**]]></content>
//	      <tags>camping,summer</tags>
//	    </page>
//	  </pages>
//	  <links>
//	    <link from="page-1" to="page-2" type="leads-to" label="next" />
//	  </links>
//	</nml>
//
// # Round-trip fidelity
//
// Marshal and Unmarshal form a round trip: for any document, unmarshaling
// the marshaled text reconstructs every page's id, position, size, color,
// title, content and tags, and every link's endpoints, type and label.
// Connection ids are not persisted; Unmarshal synthesizes fresh sequential
// ones ("connection-1", ...).
//
// # Leniency
//
// The format favors best-effort recovery of hand-edited files over strict
// rejection. Malformed markup and a missing <nml> root are hard failures;
// everything below that is lenient: pages missing an id or content block
// are skipped, links missing an endpoint are skipped, numeric attributes
// fall back to defaults, and unrecognized colors, link types and themes
// coerce to their default variant. Link endpoints are never validated
// against the page set.
package nml
