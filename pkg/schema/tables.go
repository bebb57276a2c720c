package schema

// Names of fields used by extraction logic.
const (
	OccID          = "occid"
	CollID         = "collid"
	TidInterpreted = "tidinterpreted"
	Latitude       = "decimalLatitude"
	Longitude      = "decimalLongitude"
	Country        = "country"
	StateProvince  = "stateProvince"
	IID            = "iid"
	Tid            = "tid"
	ParentTid      = "parenttid"
	SciName        = "sciName"
	Author         = "author"
	KingdomName    = "kingdomName"
)

// Occurrences describes full occurrence records. Symbiota's dateEntered and
// dateLastModified are renamed to initialTimestamp and modifiedTimestamp.
var Occurrences = Table{
	Name: "omoccurrences",
	Fields: []Field{
		{Name: OccID, Kind: Int},
		{Name: CollID, Kind: Int},
		{Name: "dbpk", Kind: String, Nullable: true},
		{Name: "basisOfRecord", Kind: String, Nullable: true},
		{Name: "occurrenceID", Kind: String, Nullable: true},
		{Name: "catalogNumber", Kind: String, Nullable: true},
		{Name: "otherCatalogNumbers", Kind: String, Nullable: true},
		{Name: "family", Kind: String, Nullable: true},
		{Name: "sciname", Kind: String, Nullable: true},
		{Name: TidInterpreted, Kind: Int, Nullable: true},
		{Name: "scientificNameAuthorship", Kind: String, Nullable: true},
		{Name: "identifiedBy", Kind: String, Nullable: true},
		{Name: "dateIdentified", Kind: String, Nullable: true},
		{Name: "recordedBy", Kind: String, Nullable: true},
		{Name: "recordNumber", Kind: String, Nullable: true},
		{Name: "eventDate", Kind: String, Nullable: true},
		{Name: "year", Kind: Int, Nullable: true},
		{Name: "month", Kind: Int, Nullable: true},
		{Name: "day", Kind: Int, Nullable: true},
		{Name: "habitat", Kind: String, Nullable: true},
		{Name: Country, Kind: String, Nullable: true},
		{Name: StateProvince, Kind: String, Nullable: true},
		{Name: "county", Kind: String, Nullable: true},
		{Name: "locality", Kind: String, Nullable: true},
		{Name: Latitude, Kind: Float, Nullable: true},
		{Name: Longitude, Kind: Float, Nullable: true},
		{Name: "coordinateUncertaintyInMeters", Kind: Int, Nullable: true},
		{Name: "minimumElevationInMeters", Kind: Int, Nullable: true},
		{Name: "maximumElevationInMeters", Kind: Int, Nullable: true},
		{Name: "initialTimestamp", Column: "dateEntered", Kind: String, Nullable: true},
		{Name: "modifiedTimestamp", Column: "dateLastModified", Kind: String, Nullable: true},
	},
}

// OccurrenceIDs is the minimal projection of occurrences used to select
// the snapshot and to derive foreign keys for the other tables.
var OccurrenceIDs = Occurrences.Select(OccID, CollID, TidInterpreted)

// Collections describes Symbiota collections.
var Collections = Table{
	Name: "omcollections",
	Fields: []Field{
		{Name: CollID, Kind: Int},
		{Name: "institutionCode", Kind: String, Nullable: true},
		{Name: "collectionCode", Kind: String, Nullable: true},
		{Name: "collectionName", Kind: String},
		{Name: "collectionID", Kind: String, Nullable: true},
		{Name: IID, Kind: Int, Nullable: true},
		{Name: "fullDescription", Kind: String, Nullable: true},
		{Name: "homepage", Kind: String, Nullable: true},
		{Name: "contact", Kind: String, Nullable: true},
		{Name: "email", Kind: String, Nullable: true},
		{Name: "latitudeDecimal", Kind: Float, Nullable: true},
		{Name: "longitudeDecimal", Kind: Float, Nullable: true},
		{Name: "icon", Kind: String, Nullable: true},
		{Name: "collType", Kind: String, Nullable: true},
		{Name: "managementType", Kind: String, Nullable: true},
		{Name: "rights", Kind: String, Nullable: true},
		{Name: "rightsHolder", Kind: String, Nullable: true},
		{Name: "initialTimestamp", Kind: String, Nullable: true},
	},
}

// Institutions describes institutions that own collections. Symbiota has
// a typo in the timestamp column, it is renamed to initialTimestamp.
var Institutions = Table{
	Name: "institutions",
	Fields: []Field{
		{Name: IID, Kind: Int},
		{Name: "InstitutionCode", Kind: String},
		{Name: "InstitutionName", Kind: String},
		{Name: "InstitutionName2", Kind: String, Nullable: true},
		{Name: "Address1", Kind: String, Nullable: true},
		{Name: "Address2", Kind: String, Nullable: true},
		{Name: "City", Kind: String, Nullable: true},
		{Name: "StateProvince", Kind: String, Nullable: true},
		{Name: "PostalCode", Kind: String, Nullable: true},
		{Name: "Country", Kind: String, Nullable: true},
		{Name: "Phone", Kind: String, Nullable: true},
		{Name: "Contact", Kind: String, Nullable: true},
		{Name: "Email", Kind: String, Nullable: true},
		{Name: "Url", Kind: String, Nullable: true},
		{Name: "Notes", Kind: String, Nullable: true},
		{Name: "initialTimestamp", Column: "IntialTimeStamp", Kind: String, Nullable: true},
	},
}

// TaxaEnumTree describes the parent-pointer table of the taxonomic tree.
var TaxaEnumTree = Table{
	Name: "taxaenumtree",
	Fields: []Field{
		{Name: Tid, Kind: Int},
		{Name: "taxauthid", Kind: Int},
		{Name: ParentTid, Kind: Int, Nullable: true},
		{Name: "initialtimestamp", Kind: String, Nullable: true},
	},
}

// Taxa describes taxon names.
var Taxa = Table{
	Name: "taxa",
	Fields: []Field{
		{Name: Tid, Kind: Int},
		{Name: KingdomName, Kind: String, Nullable: true},
		{Name: "rankID", Kind: Int, Nullable: true},
		{Name: SciName, Kind: String},
		{Name: "unitInd1", Kind: String, Nullable: true},
		{Name: "unitName1", Kind: String},
		{Name: "unitInd2", Kind: String, Nullable: true},
		{Name: "unitName2", Kind: String, Nullable: true},
		{Name: "unitInd3", Kind: String, Nullable: true},
		{Name: "unitName3", Kind: String, Nullable: true},
		{Name: Author, Kind: String, Nullable: true},
		{Name: "source", Kind: String, Nullable: true},
		{Name: "notes", Kind: String, Nullable: true},
		{Name: "securityStatus", Kind: Int},
		{Name: "initialTimestamp", Kind: String, Nullable: true},
	},
}

// TaxonUnits describes the controlled vocabulary of taxonomic ranks.
var TaxonUnits = Table{
	Name: "taxonunits",
	Fields: []Field{
		{Name: "taxonunitid", Kind: Int},
		{Name: KingdomName, Kind: String},
		{Name: "rankid", Kind: Int},
		{Name: "rankname", Kind: String},
		{Name: "suffix", Kind: String, Nullable: true},
		{Name: "dirparentrankid", Kind: Int},
		{Name: "reqparentrankid", Kind: Int, Nullable: true},
		{Name: "initialtimestamp", Kind: String, Nullable: true},
	},
}

// Output returns descriptors of all tables written to the output database
// in the order they are populated.
func Output() []Table {
	return []Table{
		TaxonUnits, Institutions, Collections,
		TaxaEnumTree, Taxa, Occurrences,
	}
}
