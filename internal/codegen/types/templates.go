package types

import "github.com/okra-platform/jvppgen/internal/codegen/fragment"

// Struct direction: copy a Java object (or array of objects) of a custom
// type into the native struct.
var (
	objectStructSetter = fragment.New(`{
    jclass ${field_reference_name}Class = (*env)->FindClass(env, "${class_name}");
    memset(&(mp->${c_name}), 0, sizeof(mp->${c_name}));
    if (${field_reference_name}) {
        ${struct_initialization}
    }
}`)

	objectArrayStructSetter = fragment.New(`{
    jclass ${field_reference_name}ArrayElementClass = (*env)->FindClass(env, "${class_name}");
    if (${field_reference_name}) {
        jsize ${field_reference_name}Index;
        jsize cnt = (*env)->GetArrayLength(env, ${field_reference_name});
        ${field_length_check}
        for (${field_reference_name}Index = 0; ${field_reference_name}Index < cnt; ${field_reference_name}Index++) {
            jobject ${field_reference_name}ArrayElement = (*env)->GetObjectArrayElement(env, ${field_reference_name}, ${field_reference_name}Index);
            memset(&(mp->${c_name}[${field_reference_name}Index]), 0, sizeof(mp->${c_name}[${field_reference_name}Index]));
            if (${field_reference_name}ArrayElement) {
                ${struct_initialization}
            }
            (*env)->DeleteLocalRef(env, ${field_reference_name}ArrayElement);
        }
    }
}`)
)

// DTO direction: create a Java object (or array of objects) of a custom type
// from the native struct.
var (
	objectDtoSetter = fragment.New(`{
    jclass ${field_reference_name}Class = (*env)->FindClass(env, "${class_name}");
    jmethodID ${field_reference_name}Constructor = (*env)->GetMethodID(env, ${field_reference_name}Class, "<init>", "()V");
    jobject ${field_reference_name} = (*env)->NewObject(env, ${field_reference_name}Class, ${field_reference_name}Constructor);
    ${type_initialization}
    (*env)->SetObjectField(env, ${object_name}, ${field_reference_name}FieldId, ${field_reference_name});
    (*env)->DeleteLocalRef(env, ${field_reference_name});
}`)

	objectArrayDtoSetter = fragment.New(`{
    jclass ${field_reference_name}ArrayElementClass = (*env)->FindClass(env, "${class_name}");
    jmethodID ${field_reference_name}Constructor = (*env)->GetMethodID(env, ${field_reference_name}ArrayElementClass, "<init>", "()V");
    jobjectArray ${field_reference_name} = (*env)->NewObjectArray(env, ${field_length}, ${field_reference_name}ArrayElementClass, 0);
    unsigned int ${field_reference_name}Index;
    for (${field_reference_name}Index = 0; ${field_reference_name}Index < ${field_length}; ${field_reference_name}Index++) {
        jobject ${field_reference_name}ArrayElement = (*env)->NewObject(env, ${field_reference_name}ArrayElementClass, ${field_reference_name}Constructor);
        ${type_initialization}
        (*env)->SetObjectArrayElement(env, ${field_reference_name}, ${field_reference_name}Index, ${field_reference_name}ArrayElement);
        (*env)->DeleteLocalRef(env, ${field_reference_name}ArrayElement);
    }
    (*env)->SetObjectField(env, ${object_name}, ${field_reference_name}FieldId, ${field_reference_name});
    (*env)->DeleteLocalRef(env, ${field_reference_name});
}`)
)
