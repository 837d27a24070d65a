package graph

import "fmt"

// Built-in dataset derived from UK ECUK 2025 household energy statistics.
// Used when no data file is configured.

type sampleCategory struct {
	name       string
	kwh        float64
	gwh        float64
	percentage float64
	fuel       string
}

type sampleFuel struct {
	name      string
	rateGBP   float64
	co2PerKWh float64
}

type sampleTip struct {
	id          string
	action      string
	description string
	savingsGBP  float64
	savingsCO2  float64
	difficulty  string
	category    string
}

type sampleHouse struct {
	houseType     string
	avgSizeSqm    float64
	occupants     float64
	heatingFactor float64
}

var sampleCategories = []sampleCategory{
	{"heating", 744, 20838, 61, "gas"},
	{"lighting", 12, 340, 1, "electricity"},
	{"appliances", 203, 5689, 17, "electricity"},
	{"water", 210, 5871, 17, "gas"},
	{"cooking", 45, 1256, 4, "electricity"},
}

var sampleFuels = []sampleFuel{
	{"gas", 0.06, 0.184},
	{"electricity", 0.24, 0.233},
}

var sampleTips = []sampleTip{
	{"tip_thermostat", "Lower thermostat by 1°C", "Reduces heating consumption by 10% without significant comfort loss", 45, 83, "easy", "heating"},
	{"tip_smart_thermostat", "Install smart thermostat", "Automated scheduling reduces heating when away, saving up to 15%", 78, 144, "medium", "heating"},
	{"tip_insulation", "Improve loft insulation", "Add 270mm insulation to reduce heat loss through roof by 25%", 150, 277, "hard", "heating"},
	{"tip_draught_proof", "Draught proof windows and doors", "Seal gaps around windows and doors to prevent heat escape", 30, 55, "easy", "heating"},
	{"tip_radiator_bleed", "Bleed radiators regularly", "Remove air bubbles to ensure efficient heat distribution", 12, 22, "easy", "heating"},
	{"tip_heating_timer", "Use heating timer efficiently", "Program heating to turn off 30 minutes before leaving", 25, 46, "easy", "heating"},
	{"tip_led_bulbs", "Switch to LED bulbs", "LEDs use 80% less energy than traditional bulbs and last 25x longer", 12, 22, "easy", "lighting"},
	{"tip_turn_off_lights", "Turn off lights when not in use", "Simple habit can reduce lighting costs by 15-20%", 8, 15, "easy", "lighting"},
	{"tip_motion_sensors", "Install motion sensor lights", "Automatic on/off for rooms with intermittent use", 5, 9, "medium", "lighting"},
	{"tip_washing_cold", "Wash clothes at 30°C", "Modern detergents work at lower temperatures, saving 40% energy", 28, 32, "easy", "appliances"},
	{"tip_dryer_air", "Air dry clothes instead of tumble dryer", "Tumble dryers are one of the most energy-intensive appliances", 55, 64, "easy", "appliances"},
	{"tip_fridge_temp", "Set fridge to 5°C, freezer to -18°C", "Optimal temperatures that don't waste energy being too cold", 15, 17, "easy", "appliances"},
	{"tip_dishwasher_full", "Only run dishwasher when full", "Run full loads to maximize efficiency per wash", 18, 21, "easy", "appliances"},
	{"tip_appliance_upgrade", "Upgrade to A+++ rated appliances", "Newer appliances use 30-50% less energy than older models", 65, 76, "hard", "appliances"},
	{"tip_unplug_standby", "Unplug devices on standby", "Standby mode can account for 5-10% of electricity use", 35, 41, "easy", "appliances"},
	{"tip_washing_full", "Wash full loads of laundry", "Running full loads uses less energy per item washed", 10, 12, "easy", "appliances"},
	{"tip_shorter_showers", "Take shorter showers (5 minutes)", "Reduce shower time from 10 to 5 minutes to cut water heating costs", 35, 65, "easy", "water"},
	{"tip_shower_aerator", "Install low-flow shower head", "Reduce water flow while maintaining pressure, saving water and heating", 22, 41, "medium", "water"},
	{"tip_boiler_temp", "Set boiler temperature to 60°C", "Optimal temperature for hot water without excessive heating", 20, 37, "easy", "water"},
	{"tip_tap_repair", "Fix dripping taps", "A dripping hot tap wastes both water and heating energy", 8, 15, "easy", "water"},
	{"tip_insulate_boiler", "Insulate hot water cylinder", "Cylinder jacket reduces heat loss and saves energy", 25, 46, "medium", "water"},
	{"tip_wash_cold_water", "Use cold water for washing machine when possible", "Cold water cycles use significantly less energy", 12, 14, "easy", "water"},
	{"tip_lid_pans", "Use lids on pans when cooking", "Lids trap heat and reduce cooking time by 30%", 8, 9, "easy", "cooking"},
	{"tip_oven_door", "Avoid opening oven door frequently", "Each opening loses heat and increases cooking time", 5, 6, "easy", "cooking"},
	{"tip_microwave_over_oven", "Use microwave instead of oven when possible", "Microwaves use 50-80% less energy for reheating", 12, 14, "easy", "cooking"},
	{"tip_kettle_water", "Only boil needed amount of water", "Boiling excess water wastes electricity unnecessarily", 6, 7, "easy", "cooking"},
	{"tip_induction_hob", "Use induction hob over gas", "Induction hobs are more efficient and precise than gas", 15, 17, "hard", "cooking"},
	{"tip_batch_cooking", "Cook in batches and reheat", "Cooking larger portions uses energy more efficiently", 10, 12, "easy", "cooking"},
}

var sampleHouses = []sampleHouse{
	{"flat", 800, 2, 0.8},
	{"terraced", 1100, 3, 0.9},
	{"semi_detached", 1400, 3, 1.0},
	{"detached", 1800, 4, 1.2},
}

// SampleGraph builds the embedded energy dataset: categories linked to their
// fuel, tips linked to the category they improve and to every house type they
// suit.
func SampleGraph() ([]Node, []Edge) {
	var nodes []Node
	var edges []Edge

	for _, c := range sampleCategories {
		id := fmt.Sprintf("category_%s", c.name)
		nodes = append(nodes, Node{
			ID:    id,
			Label: LabelCategory,
			Properties: map[string]interface{}{
				"name":         c.name,
				"kwh_per_home": c.kwh,
				"total_gwh":    c.gwh,
				"percentage":   c.percentage,
				"fuel_type":    c.fuel,
			},
		})
		edges = append(edges, Edge{
			Source:       id,
			Target:       fmt.Sprintf("fuel_%s", c.fuel),
			Relationship: RelUsesFuel,
		})
	}

	for _, f := range sampleFuels {
		nodes = append(nodes, Node{
			ID:    fmt.Sprintf("fuel_%s", f.name),
			Label: LabelFuelType,
			Properties: map[string]interface{}{
				"name":         f.name,
				"rate_gbp_kwh": f.rateGBP,
				"co2_kg_kwh":   f.co2PerKWh,
			},
		})
	}

	for _, t := range sampleTips {
		nodes = append(nodes, Node{
			ID:    t.id,
			Label: LabelTip,
			Properties: map[string]interface{}{
				"action":      t.action,
				"description": t.description,
				"savings_gbp": t.savingsGBP,
				"savings_co2": t.savingsCO2,
				"difficulty":  t.difficulty,
				"category":    t.category,
			},
		})
		edges = append(edges, Edge{
			Source:       t.id,
			Target:       fmt.Sprintf("category_%s", t.category),
			Relationship: RelImproves,
		})
		for _, h := range sampleHouses {
			edges = append(edges, Edge{
				Source:       t.id,
				Target:       fmt.Sprintf("house_%s", h.houseType),
				Relationship: RelSuitableFor,
			})
		}
	}

	for _, h := range sampleHouses {
		nodes = append(nodes, Node{
			ID:    fmt.Sprintf("house_%s", h.houseType),
			Label: LabelHouseType,
			Properties: map[string]interface{}{
				"type":               h.houseType,
				"avg_size_sqm":       h.avgSizeSqm,
				"typical_occupants":  h.occupants,
				"heating_kwh_factor": h.heatingFactor,
			},
		})
	}

	return nodes, edges
}
