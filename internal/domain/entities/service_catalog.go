package entities

// ServiceID identifies one of the services offered in the catalog.
type ServiceID string

const (
	ServiceLoveSpell             ServiceID = "love_spell"
	ServiceObsessionSpell        ServiceID = "obsession_spell"
	ServiceReturnLoverSpell      ServiceID = "return_lover_spell"
	ServiceBindingSpell          ServiceID = "binding_spell"
	ServiceBreakUpSpell          ServiceID = "break_up_spell"
	ServiceProtectionRitual      ServiceID = "protection_ritual"
	ServiceCleansingRitual       ServiceID = "cleansing_ritual"
	ServiceCurseRemoval          ServiceID = "curse_removal"
	ServiceMoneySpell            ServiceID = "money_spell"
	ServiceLuckSpell             ServiceID = "luck_spell"
	ServiceCareerSuccessSpell    ServiceID = "career_success_spell"
	ServiceFertilitySpell        ServiceID = "fertility_spell"
	ServiceHealingRitual         ServiceID = "healing_ritual"
	ServiceTarotReading          ServiceID = "tarot_reading"
	ServiceSpiritualConsultation ServiceID = "spiritual_consultation"
)

var serviceCatalog = map[ServiceID]string{
	ServiceLoveSpell:             "Love Spell",
	ServiceObsessionSpell:        "Obsession Spell",
	ServiceReturnLoverSpell:      "Return Lover Spell",
	ServiceBindingSpell:          "Binding Spell",
	ServiceBreakUpSpell:          "Break Up Spell",
	ServiceProtectionRitual:      "Protection Ritual",
	ServiceCleansingRitual:       "Cleansing Ritual",
	ServiceCurseRemoval:          "Curse Removal",
	ServiceMoneySpell:            "Money Spell",
	ServiceLuckSpell:             "Luck Spell",
	ServiceCareerSuccessSpell:    "Career Success Spell",
	ServiceFertilitySpell:        "Fertility Spell",
	ServiceHealingRitual:         "Healing Ritual",
	ServiceTarotReading:          "Tarot Reading",
	ServiceSpiritualConsultation: "Spiritual Consultation",
}

func (s ServiceID) Valid() bool {
	_, ok := serviceCatalog[s]
	return ok
}

// DisplayName returns the catalog name, or "" for unknown ids.
func (s ServiceID) DisplayName() string {
	return serviceCatalog[s]
}

// ServiceIDs lists every catalog entry.
func ServiceIDs() []ServiceID {
	out := make([]ServiceID, 0, len(serviceCatalog))
	for id := range serviceCatalog {
		out = append(out, id)
	}
	return out
}
