package types

// Namespace classifies the shape of an ID string.
type Namespace string

const (
	NamespaceNumericIndex     Namespace = "numeric-index"
	NamespaceMegaHair         Namespace = "mega-hair"
	NamespaceMakeup           Namespace = "makeup"
	NamespaceNailPolish       Namespace = "nail-polish"
	NamespaceHairDye          Namespace = "hair-dye"
	NamespacePerfumeWepink    Namespace = "perfume-wepink"
	NamespacePerfumeBoticario Namespace = "perfume-boticario"
	NamespaceStraightening    Namespace = "straightening"
	NamespaceCategory         Namespace = "category"
	NamespaceUnclassified     Namespace = "unclassified"
)

// Family is the product family a record belongs to.
type Family string

const (
	FamilyMegaHair      Family = "mega-hair"
	FamilyMakeup        Family = "makeup"
	FamilyNailPolish    Family = "nail-polish"
	FamilyHairDye       Family = "hair-dye"
	FamilyPerfume       Family = "perfume"
	FamilyStraightening Family = "straightening"
	FamilyUnknown       Family = "unknown"
)

// SourceName identifies a catalog source in logs, metrics and mapping info.
type SourceName string

const (
	SourceStatic           SourceName = "static"
	SourceDatabase         SourceName = "database"
	SourceMakeup           SourceName = "makeup"
	SourceCategories       SourceName = "categories"
	SourceMegaHair         SourceName = "megahair"
	SourceHairDye          SourceName = "hair-dye"
	SourceNailPolish       SourceName = "nail-polish"
	SourcePerfumeWepink    SourceName = "perfumes-wepink"
	SourcePerfumeBoticario SourceName = "perfumes-boticario"
	SourcePerfumeLegacy    SourceName = "perfumes-legacy"
	SourceStraightening    SourceName = "straightening"
)
