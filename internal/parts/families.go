package parts

import "partsdb/internal/kicad"

// The part families served as KiCad database libraries:
//
//	Capacitors (prefix "CAP"), Connectors ("CON"), Crystals and
//	Oscillators ("XTL"), Diodes ("DIO"), ICs ("IC"), Inductors ("IND"),
//	Mechanical ("MECH"), Misc ("MIS"), Relays ("RLY"), Resistors ("RES"),
//	Switches ("SW"), Transformers ("XFR"), Transistors ("XTR")
//
// Every family shares the base attribute set; the key column is the
// computed part number.

// partNumberExpr derives the human part number from the row sequence,
// e.g. RES-00042.
const partNumberExpr = "'{prefix}' || '-' || LPAD(sequence_number::TEXT, 5, '0')"

func base(name, pretty, prefix string) *kicad.Definition {
	d := kicad.NewDefinition(name,
		kicad.WithPretty(pretty),
		kicad.WithKey("part_number"),
		kicad.WithVars(map[string]string{"prefix": prefix}),
	)

	d.Add("sequence_number", kicad.Plain(kicad.Column{
		Type: kicad.Integer, Autoincrement: true, Unique: true, Index: true,
		Comment: "Sequence number of the component",
	}))
	d.Add("part_number", kicad.Field(kicad.NamedField{
		Name:             "Part Number",
		VisibleInChooser: true,
		Computed:         partNumberExpr,
		Description:      "Part number of the component",
	}))

	d.Add("value", kicad.Property(kicad.PropValue, "Value of the component"))
	d.Add("description", kicad.Property(kicad.PropDescription, "Description of the component"))
	d.Add("datasheet", kicad.Property(kicad.PropDatasheet, "URL to the datasheet of the component"))
	d.Add("keywords", kicad.Property(kicad.PropKeywords, "Type of the component. Formatted as a path, like typeA/typeB"))
	d.Add("exclude_from_bom", kicad.Property(kicad.PropExcludeFromBOM, "Exclude from BOM"))
	d.Add("exclude_from_board", kicad.Property(kicad.PropExcludeFromBoard, "Exclude from board layout"))
	d.Add("exclude_from_sim", kicad.Property(kicad.PropExcludeFromSim, "Exclude from simulation"))

	d.Add("step_model", kicad.Field(kicad.NamedField{
		Name: "Step Model", Description: "Step model for the component",
	}))
	d.Add("package_type", kicad.Field(kicad.NamedField{
		Name: "Package Type", VisibleInChooser: true, InheritProperties: true,
		Description: "Human readable package type for the component, like QFNnn, TQFPnn, etc.",
	}))

	// not transferred to KiCad, used for BOM generation and sourcing
	d.Add("number_of_pins", kicad.Plain(kicad.Column{
		Type: kicad.Integer, Nullable: true, Comment: "Number of pins for the component",
	}))
	d.Add("series", kicad.Plain(kicad.Column{
		Type: kicad.String, Nullable: true, Default: "", Comment: "Series of the component",
	}))
	d.Add("manufacturer_name", kicad.Plain(kicad.Column{
		Type: kicad.String, Nullable: true, Comment: "Manufacturer name",
	}))
	d.Add("manufacturer_part_number", kicad.Plain(kicad.Column{
		Type: kicad.String, Nullable: true, Comment: "Manufacturer's part number of the component",
	}))

	return d
}

func field(name, description string) kicad.FieldSpec {
	return kicad.Field(kicad.NamedField{Name: name, Description: description})
}

// BuildRegistry constructs and registers every part-family definition. This
// is the single initialization point: callers synthesize the result once at
// startup and pass it down.
func BuildRegistry() (*kicad.Registry, error) {
	resistors := base("resistors", "Resistors", "RES").
		Add("power_rating", field("Power", "Power rating of the resistor in watts")).
		Add("tolerance", field("Tolerance", "Tolerance of the resistor"))

	capacitors := base("capacitors", "Capacitors", "CAP").
		Add("voltage_rating", field("Voltage", "Voltage rating of the capacitor")).
		Add("tolerance", field("Tolerance", "Tolerance of the capacitor")).
		Add("dielectric", field("Dielectric", "Dielectric of the capacitor"))

	connectors := base("connectors", "Connectors", "CON").
		Add("connector_type", field("Type", "Type of connector")).
		Add("pitch", field("Pitch", "Pitch of the connector"))

	crystals := base("crystal_oscillators", "Crystals and Oscillators", "XTL").
		Add("accuracy", field("Accuracy", "Accuracy of the crystal or oscillator")).
		Add("load_capacitance", field("Load Capacitance", "Load capacitance of the crystal or oscillator"))

	diodes := base("diodes", "Diodes", "DIO").
		Add("diode_type", field("Type", "Type of diode")).
		Add("reverse_voltage", field("Reverse Voltage", "Reverse voltage of the diode")).
		Add("forward_current", field("Forward Current", "Forward current of the diode"))

	ics := base("ics", "ICs", "IC").
		Add("ic_type", field("IC Type", "Type of IC"))

	inductors := base("inductors", "Inductors", "IND").
		Add("current_rating", field("Current Rating", "Current rating of the inductor")).
		Add("dc_resistance", field("DC Resistance", "DC resistance of the inductor"))

	mechanical := base("mechanical", "Mechanical", "MECH").
		Add("mechanical_type", field("Type", "Type of mechanical part"))

	misc := base("misc", "Misc", "MIS").
		Add("misc_type", field("Type", "Type of misc part"))

	relays := base("relays", "Relays", "RLY").
		Add("relay_type", field("Type", "Type of relay")).
		Add("coil_voltage", field("Voltage", "Coil voltage of the relay")).
		Add("contact_rating", field("Current", "Contact rating of the relay"))

	switches := base("switches", "Switches", "SW").
		Add("switch_type", field("Type", "Type of switch")).
		Add("current_rating", field("Current", "Current rating of the switch")).
		Add("voltage_rating", field("Voltage", "Voltage rating of the switch"))

	transformers := base("transformers", "Transformers", "XFR").
		Add("transformer_type", field("Type", "Type of transformer")).
		Add("power_rating", field("Power", "Power rating of the transformer"))

	transistors := base("transistors", "Transistors", "XTR").
		Add("transistor_type", field("Type", "Type of transistor")).
		Add("current", field("Current", "Collector current or drain current of the transistor")).
		Add("voltage", field("Voltage", "Collector emitter or drain source voltage of the transistor"))

	r := kicad.NewRegistry()
	for _, d := range []*kicad.Definition{
		resistors, capacitors, connectors, crystals, diodes, ics, inductors,
		mechanical, misc, relays, switches, transformers, transistors,
	} {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}
