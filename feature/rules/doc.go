// Package rules loads comparison rules.
//
// Rules come either from the meta_table_map table (TableStore) or from the
// rules list of a YAML file (ConfigStore). Both return every rule ordered by
// rule id, active or not; the engine decides what to do with inactive rules.
//
// In meta_table_map the ignore lists, the primary key and the optional
// column map are JSON arrays. NULL and [] both mean "none".
//
//	rules:
//	  - rule_id: 7
//	    source: {schema: RAW, table: CUSTOMERS}
//	    source_ignore: [LOAD_TS, _INGEST_ID]
//	    target: {schema: DW, table: DIM_CUSTOMER}
//	    target_ignore: [_ETL_TS, HASHDIFF]
//	    primary_key: [CUSTOMER_ID]
package rules
